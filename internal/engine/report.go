package engine

import "github.com/provlab/hedberg/internal/term"

// Phase tracks the invocation state machine:
//
//	Init -> Oriented -> Introspected -> Generalized -> Split
//
// After Split each branch independently reaches one of the terminal
// branch statuses.
type Phase string

const (
	PhaseInit         Phase = "init"
	PhaseOriented     Phase = "oriented"
	PhaseIntrospected Phase = "introspected"
	PhaseGeneralized  Phase = "generalized"
	PhaseSplit        Phase = "split"
)

// BranchStatus is the terminal state of one constructor branch.
// Discharged and Contradicted are terminal-closed; Open is
// terminal-unresolved, surfaced to the caller.
type BranchStatus string

const (
	BranchDischarged   BranchStatus = "discharged"
	BranchContradicted BranchStatus = "contradicted"
	BranchOpen         BranchStatus = "open"
)

// OpenReason explains why a branch was left open. Open reasons are
// per-branch and independent; one open branch never blocks another
// from closing.
type OpenReason string

const (
	// ReasonMissingDecider: an index type has no registered decider,
	// blocking the transport-elimination step.
	ReasonMissingDecider OpenReason = "missing_decider"
	// ReasonUnresolved: the structural-match search failed after
	// transport elimination.
	ReasonUnresolved OpenReason = "unresolved"
)

// BranchReport records the outcome of one constructor branch.
type BranchReport struct {
	// Ctor is the constructor shape this branch examined.
	Ctor string

	Status BranchStatus

	// Reason and Detail are set for open branches.
	Reason OpenReason
	Detail string

	// Residual is the simplified goal of an open branch, stated over
	// plain terms after normalization and contradiction pruning.
	Residual term.Term

	// Witness is the closing evidence of a discharged branch.
	Witness term.Term
}

// Closed reports whether the branch is terminal-closed.
func (b BranchReport) Closed() bool {
	return b.Status == BranchDischarged || b.Status == BranchContradicted
}

// Result is the outcome of one engine invocation.
type Result struct {
	// ObligationID is the content-addressed identity of the oriented
	// obligation.
	ObligationID string

	// Name echoes the obligation's name.
	Name string

	// ICount is the caller-supplied index count.
	ICount int

	// Phase is the furthest phase reached; always PhaseSplit for a
	// completed invocation.
	Phase Phase

	// Closed reports full closure: every branch terminal-closed.
	Closed bool

	Branches []BranchReport
}

// Residuals returns the simplified goals of all open branches, the
// residual obligation set surfaced to the caller.
func (r *Result) Residuals() []term.Term {
	var out []term.Term
	for _, b := range r.Branches {
		if b.Status == BranchOpen && b.Residual != nil {
			out = append(out, b.Residual)
		}
	}
	return out
}

// Count returns the number of branches with the given status.
func (r *Result) Count(status BranchStatus) int {
	n := 0
	for _, b := range r.Branches {
		if b.Status == status {
			n++
		}
	}
	return n
}
