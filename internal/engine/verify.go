package engine

import (
	"fmt"

	"github.com/provlab/hedberg/internal/decider"
	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/hlist"
	"github.com/provlab/hedberg/internal/term"
)

// Verify re-checks a full-closure result against the original,
// unmodified obligation. It recomputes every branch justification
// independently of the producing run: contradicted branches must
// destructure to a contradiction, and discharged branches must carry
// decider coverage for every index type (no axiom beyond
// decidability-justified transport elimination) plus a witness that
// actually closes the residual equality.
//
// A nil return means the result substitutes back into the obligation
// soundly.
func Verify(reg *decider.Registry, ob *goal.Obligation, res *Result) error {
	if !res.Closed {
		return fmt.Errorf("result is not a closure report")
	}

	oriented := goal.Orient(ob)
	an, err := goal.Introspect(oriented, res.ICount)
	if err != nil {
		return fmt.Errorf("obligation does not introspect: %w", err)
	}

	id, err := oriented.ID()
	if err != nil {
		return err
	}
	if id != res.ObligationID {
		return fmt.Errorf("result identity %s does not match obligation %s", res.ObligationID, id)
	}

	if len(res.Branches) != len(an.Family.Ctors) {
		return fmt.Errorf("result has %d branches, family %s has %d constructors",
			len(res.Branches), an.Family.Name, len(an.Family.Ctors))
	}

	nat, err := an.IndexTuple()
	if err != nil {
		return err
	}
	origRev := hlist.TupleReverse(nat).Normalize()

	n := len(an.Indices)
	for i, br := range res.Branches {
		ctor := an.Family.Ctors[i]
		if br.Ctor != ctor.Name {
			return fmt.Errorf("branch %d: reported %s, declaration order says %s", i, br.Ctor, ctor.Name)
		}
		trailing := ctor.Indices[len(ctor.Indices)-n:]
		ctorTup, err := hlist.FromSlices(an.IndexTypes, trailing)
		if err != nil {
			return fmt.Errorf("branch %s: %w", ctor.Name, err)
		}
		ctorRev := hlist.TupleReverse(ctorTup).Normalize()

		switch br.Status {
		case BranchContradicted:
			if destructure(origRev, ctorRev) != hypContradicted {
				return fmt.Errorf("branch %s: reported contradicted, hypothesis is satisfiable", ctor.Name)
			}
		case BranchDischarged:
			if destructure(origRev, ctorRev) == hypContradicted {
				return fmt.Errorf("branch %s: reported discharged, hypothesis is contradictory", ctor.Name)
			}
			if !hasDeciders(reg, an.IndexTypes) {
				return fmt.Errorf("branch %s: transport elimination lacks decider coverage", ctor.Name)
			}
			if err := verifyWitness(reg, an, ctor, br.Witness); err != nil {
				return fmt.Errorf("branch %s: %w", ctor.Name, err)
			}
		default:
			return fmt.Errorf("branch %s: status %s in a closure report", ctor.Name, br.Status)
		}
	}
	return nil
}

func verifyWitness(reg *decider.Registry, an *goal.Analysis, ctor term.Ctor, witness term.Term) error {
	if witness == nil {
		return fmt.Errorf("discharged without witness")
	}
	ctorEv := term.S(ctor.Name)
	if term.IsRefl(witness) {
		if !term.Equal(an.Lhs, ctorEv) {
			return fmt.Errorf("reflexivity witness, but %s differs from %s", an.Lhs, ctorEv)
		}
		return nil
	}
	head, args := term.Spine(witness)
	hs, ok := head.(term.Sym)
	if !ok || hs.Name != UniqName || len(args) != 2 {
		return fmt.Errorf("unrecognized witness %s", witness)
	}
	if !term.Equal(args[0], an.Lhs) || !term.Equal(args[1], ctorEv) {
		return fmt.Errorf("witness %s does not mention the branch evidence", witness)
	}
	// The uniqueness witness is valid only when this constructor is
	// the sole fit at the obligation's indices.
	checker := New(reg)
	fits := checker.fittingCtors(an)
	if len(fits) != 1 || fits[0] != ctor.Name {
		return fmt.Errorf("witness %s, but constructor fit is not unique (%v)", witness, fits)
	}
	return nil
}
