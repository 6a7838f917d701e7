package term

import "fmt"

// Family declares an indexed predicate: a head symbol, its index
// arity, and the constructor shapes of its evidence. Families are
// supplied by the surrounding verification framework (in practice, a
// CUE bundle); the engine consumes them read-only.
type Family struct {
	Name  string
	Arity int
	Ctors []Ctor
}

// Ctor is one constructor shape of an indexed family. Indices holds
// the ground index values at which this constructor yields evidence,
// one per index position, in the family's natural argument order.
type Ctor struct {
	Name    string
	Indices []Term
}

// Ctor looks up a constructor by name.
func (f *Family) Ctor(name string) (Ctor, bool) {
	for _, c := range f.Ctors {
		if c.Name == name {
			return c, true
		}
	}
	return Ctor{}, false
}

// Validate checks internal consistency of the declaration: positive
// arity fields, unique constructor names, and index lists matching the
// declared arity.
func (f *Family) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("family has no name")
	}
	if f.Arity < 0 {
		return fmt.Errorf("family %s: negative arity %d", f.Name, f.Arity)
	}
	seen := make(map[string]bool, len(f.Ctors))
	for _, c := range f.Ctors {
		if c.Name == "" {
			return fmt.Errorf("family %s: constructor has no name", f.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("family %s: duplicate constructor %q", f.Name, c.Name)
		}
		seen[c.Name] = true
		if len(c.Indices) != f.Arity {
			return fmt.Errorf("family %s: constructor %q has %d indices, want %d",
				f.Name, c.Name, len(c.Indices), f.Arity)
		}
	}
	return nil
}
