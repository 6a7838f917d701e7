package engine

import "github.com/provlab/hedberg/internal/term"

// hypOutcome is the result of destructuring a branch's index-equality
// hypothesis.
type hypOutcome int

const (
	// hypCollapsed: every component matched; the hypothesis collapses
	// to reflexivity.
	hypCollapsed hypOutcome = iota
	// hypContradicted: some component pair has mismatched top-level
	// constructors; the branch is impossible.
	hypContradicted
)

// destructure repeatedly decomposes the equality hypothesis between
// two index values in computed nested-pair form. Index values are
// constructor data: a symbol is a constructor form, an application is
// a constructor applied to components. Mismatched heads mark the
// branch impossible; matching heads decompose component-wise until
// the hypothesis collapses to reflexivity.
func destructure(a, b term.Term) hypOutcome {
	switch av := a.(type) {
	case term.Sym:
		bv, ok := b.(term.Sym)
		if !ok || av.Name != bv.Name {
			return hypContradicted
		}
		return hypCollapsed
	case term.App:
		if _, ok := b.(term.App); !ok {
			return hypContradicted
		}
		aHead, aArgs := term.Spine(a)
		bHead, bArgs := term.Spine(b)
		if destructure(aHead, bHead) == hypContradicted {
			return hypContradicted
		}
		if len(aArgs) != len(bArgs) {
			return hypContradicted
		}
		for i := range aArgs {
			if destructure(aArgs[i], bArgs[i]) == hypContradicted {
				return hypContradicted
			}
		}
		return hypCollapsed
	default:
		return hypContradicted
	}
}
