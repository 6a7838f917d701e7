package testutil

import (
	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/term"
)

// Ctor pairs a constructor name with its surface-syntax index values.
type Ctor struct {
	Name    string
	Indices []string
}

// Family builds a family declaration. Constructor order is preserved,
// matching the engine's split order.
//
//	Family("Mem", 2, Ctor{"mk", []string{"tt", "pair tt tt"}})
//
// Panics on parse errors; for test fixtures only.
func Family(name string, arity int, ctors ...Ctor) *term.Family {
	fam := &term.Family{Name: name, Arity: arity}
	for _, c := range ctors {
		ctor := term.Ctor{Name: c.Name}
		for _, src := range c.Indices {
			ctor.Indices = append(ctor.Indices, term.MustParseTerm(src))
		}
		fam.Ctors = append(fam.Ctors, ctor)
	}
	if err := fam.Validate(); err != nil {
		panic(err)
	}
	return fam
}

// Obligation builds a proof obligation from surface syntax.
// Env values are type expressions keyed by symbol name.
// Panics on parse errors; for test fixtures only.
func Obligation(name string, env map[string]string, families []*term.Family, ty, lhs, rhs string) *goal.Obligation {
	ob := &goal.Obligation{
		Name:     name,
		Env:      term.Env{},
		Families: map[string]*term.Family{},
		Ty:       term.MustParseTerm(ty),
		Lhs:      term.MustParseTerm(lhs),
		Rhs:      term.MustParseTerm(rhs),
	}
	for sym, tyExpr := range env {
		ob.Env[sym] = term.MustParseType(tyExpr)
	}
	for _, fam := range families {
		ob.Families[fam.Name] = fam
	}
	return ob
}
