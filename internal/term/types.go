package term

import "fmt"

// Type is a sealed interface for index-type descriptors. Only Unit,
// Pair, and Named implement it.
//
// Key returns the canonical text of the descriptor. Keys are the
// identity used by the decider registry and by type equality: two
// descriptors are the same type exactly when their keys are equal.
type Type interface {
	typeNode() // Sealed - only these types implement it
	Key() string
}

// Unit is the one-value index type. Its sole inhabitant is the builtin
// symbol "tt".
type Unit struct{}

func (Unit) typeNode() {}

func (Unit) Key() string { return "unit" }

// Pair is the product of two index types. Its values are spines of the
// builtin symbol "pair" applied to one value of each component.
type Pair struct {
	Fst Type
	Snd Type
}

func (Pair) typeNode() {}

func (p Pair) Key() string {
	return fmt.Sprintf("pair(%s,%s)", p.Fst.Key(), p.Snd.Key())
}

// Named is an index type known only by name. The engine can case on
// values of Named types structurally but can decide their equality
// only through a registered decider.
type Named struct {
	Name string
}

func (Named) typeNode() {}

func (n Named) Key() string { return n.Name }

// TypeEqual reports whether two descriptors denote the same type.
func TypeEqual(a, b Type) bool {
	return a.Key() == b.Key()
}

// Builtin symbol names with fixed typing rules.
const (
	// TTName is the sole constructor of Unit.
	TTName = "tt"
	// PairName is the constructor of Pair values, applied to two
	// component values.
	PairName = "pair"
)

// TT is the unit value.
func TT() Term { return Sym{Name: TTName} }

// MkPair builds the pair value (pair a b).
func MkPair(a, b Term) Term {
	return Apply(Sym{Name: PairName}, a, b)
}

// Env assigns types to the free symbols of index values. The builtins
// tt and pair are typed structurally and need no entry.
type Env map[string]Type

// TypeOf computes the type of an index value under the environment.
//
/// Only index values are typable: tt, pair applications, and symbols
// the environment knows. Evidence terms are deliberately untypable
// here - the engine treats evidence as a black box.
func (e Env) TypeOf(t Term) (Type, error) {
	switch v := t.(type) {
	case Sym:
		if v.Name == TTName {
			return Unit{}, nil
		}
		if ty, ok := e[v.Name]; ok {
			return ty, nil
		}
		return nil, fmt.Errorf("symbol %q has no declared type", v.Name)
	case App:
		head, args := Spine(t)
		hs, ok := head.(Sym)
		if !ok || hs.Name != PairName {
			return nil, fmt.Errorf("cannot type application %s: head is not a value constructor", t)
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("pair applied to %d arguments, want 2", len(args))
		}
		fst, err := e.TypeOf(args[0])
		if err != nil {
			return nil, err
		}
		snd, err := e.TypeOf(args[1])
		if err != nil {
			return nil, err
		}
		return Pair{Fst: fst, Snd: snd}, nil
	default:
		return nil, fmt.Errorf("unknown term node %T", t)
	}
}
