package engine

import (
	"github.com/provlab/hedberg/internal/decider"
	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/term"
)

// UniqName heads the closing witness of a branch discharged by the
// uniqueness principle: equality on the index types is decidable, so
// any two proofs of an index identity are equal, the transport is
// eliminated as the identity function, and evidence at a
// uniquely-inhabited index tuple is forced to the one fitting
// constructor.
const UniqName = "uniq"

// discharge closes a destructed branch whose goal has the shape
//
//	eq (transport refl lhs) ctorEvidence
//
// Transport elimination requires a registered decider for every index
// type; without one the branch stays open. The residual equality is
// then closed by a structural-match search seeded with the registry's
// facts as hints: exact structural equality closes immediately,
// otherwise the family's constructors are matched against the branch
// indices and a unique fit forces the evidence.
func (e *Engine) discharge(an *goal.Analysis, branchGoal term.Term, ctor term.Ctor) BranchReport {
	report := BranchReport{Ctor: ctor.Name}

	lhsT, ctorEv, ok := term.MatchEq(branchGoal)
	if !ok {
		report.Status = BranchOpen
		report.Reason = ReasonUnresolved
		report.Detail = "goal is not an equality"
		report.Residual = branchGoal
		return report
	}
	proof, lhs, ok := term.MatchTransport(lhsT)
	if !ok || !term.IsRefl(proof) {
		report.Status = BranchOpen
		report.Reason = ReasonUnresolved
		report.Detail = "left side is not a reflexive transport"
		report.Residual = branchGoal
		return report
	}

	// Transport elimination. Uniqueness of identity proofs holds for
	// the index types exactly when their equality is decidable, so
	// every index type needs a registered fact.
	for _, ty := range an.IndexTypes {
		if _, found := e.reg.Lookup(ty); !found {
			report.Status = BranchOpen
			report.Reason = ReasonMissingDecider
			report.Detail = ty.Key()
			report.Residual = branchGoal
			return report
		}
	}
	residual := term.MkEq(lhs, ctorEv)

	if term.Equal(lhs, ctorEv) {
		report.Status = BranchDischarged
		report.Witness = term.Refl()
		return report
	}

	// Structural-match search: enumerate constructor shapes that can
	// inhabit the branch's index tuple. If exactly one fits and it is
	// this branch's constructor, any evidence at these indices is that
	// constructor.
	fits := e.fittingCtors(an)
	if len(fits) == 1 && fits[0] == ctor.Name && term.Equal(ctorEv, term.S(ctor.Name)) {
		report.Status = BranchDischarged
		report.Witness = term.Apply(term.S(UniqName), lhs, ctorEv)
		return report
	}

	report.Status = BranchOpen
	report.Reason = ReasonUnresolved
	report.Detail = "no unique constructor fit"
	report.Residual = residual
	return report
}

// fittingCtors returns the names of constructors whose trailing index
// values are not provably apart from the obligation's index values.
func (e *Engine) fittingCtors(an *goal.Analysis) []string {
	var fits []string
	n := len(an.Indices)
	for _, c := range an.Family.Ctors {
		if len(c.Indices) < n {
			continue
		}
		trailing := c.Indices[len(c.Indices)-n:]
		apartSomewhere := false
		for i := range trailing {
			if e.apart(an.IndexTypes[i], an.Indices[i], trailing[i]) {
				apartSomewhere = true
				break
			}
		}
		if !apartSomewhere {
			fits = append(fits, c.Name)
		}
	}
	return fits
}

// apart reports that two index values are provably unequal: a
// registered decider rules them out, or their constructor forms
// mismatch structurally.
func (e *Engine) apart(ty term.Type, a, b term.Term) bool {
	if fn, ok := e.reg.Lookup(ty); ok {
		if eq, err := fn(a, b); err == nil {
			return !eq
		}
	}
	return destructure(a, b) == hypContradicted
}

// hasDeciders reports decider coverage for every type in the list.
func hasDeciders(reg *decider.Registry, types []term.Type) bool {
	for _, ty := range types {
		if _, ok := reg.Lookup(ty); !ok {
			return false
		}
	}
	return true
}
