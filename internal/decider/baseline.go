package decider

import (
	"fmt"

	"github.com/provlab/hedberg/internal/term"
)

// Baseline facts. These are support content consumed by the engine,
// not part of it: the unit decider and the pair rule composing
// component deciders. Callers register further facts for their own
// index types before invoking the engine on them.

// UnitDecider decides equality on the unit type: any two unit values
// are equal, and the only unit value is tt.
func UnitDecider(a, b term.Term) (bool, error) {
	for _, v := range []term.Term{a, b} {
		s, ok := v.(term.Sym)
		if !ok || s.Name != term.TTName {
			return false, fmt.Errorf("%s is not a unit value", v)
		}
	}
	return true, nil
}

// PairRule composes a decider for pair(A,B) from deciders of A and B.
// It applies only when both component types resolve in the registry.
func PairRule(ty term.Type, reg *Registry) (Func, bool) {
	p, ok := ty.(term.Pair)
	if !ok {
		return nil, false
	}
	decFst, ok := reg.Lookup(p.Fst)
	if !ok {
		return nil, false
	}
	decSnd, ok := reg.Lookup(p.Snd)
	if !ok {
		return nil, false
	}
	return func(a, b term.Term) (bool, error) {
		af, as, err := splitPair(a)
		if err != nil {
			return false, err
		}
		bf, bs, err := splitPair(b)
		if err != nil {
			return false, err
		}
		eqFst, err := decFst(af, bf)
		if err != nil {
			return false, err
		}
		if !eqFst {
			return false, nil
		}
		return decSnd(as, bs)
	}, true
}

// CanonicalDecider decides equality of canonical constructor values by
// structural comparison. Valid for any index type whose values are
// inert canonical forms, which is what obligation bundles declare for
// named types.
func CanonicalDecider(a, b term.Term) (bool, error) {
	return term.Equal(a, b), nil
}

func splitPair(v term.Term) (fst, snd term.Term, err error) {
	head, args := term.Spine(v)
	s, ok := head.(term.Sym)
	if !ok || s.Name != term.PairName || len(args) != 2 {
		return nil, nil, fmt.Errorf("%s is not a pair value", v)
	}
	return args[0], args[1], nil
}

// RegisterBaseline installs the unit fact and the pair rule into reg.
// Not idempotent: registration is append-only, so seed a registry
// once. Use Baseline for a fresh pre-seeded one.
func RegisterBaseline(reg *Registry) error {
	if err := reg.Register(term.Unit{}, UnitDecider); err != nil {
		return err
	}
	reg.RegisterRule(PairRule)
	return nil
}

// Baseline returns a fresh registry pre-seeded with the baseline facts.
func Baseline() *Registry {
	reg := NewRegistry()
	if err := RegisterBaseline(reg); err != nil {
		// A fresh registry cannot collide.
		panic(err)
	}
	return reg
}
