package engine

import (
	"log/slog"

	"github.com/provlab/hedberg/internal/decider"
	"github.com/provlab/hedberg/internal/goal"
	"github.com/provlab/hedberg/internal/hlist"
	"github.com/provlab/hedberg/internal/motive"
	"github.com/provlab/hedberg/internal/term"
)

// Engine runs the uniqueness procedure: one invocation is one atomic,
// synchronous transformation of one proof obligation.
//
// Thread-safety model:
//   - Uniqueness(): safe from any goroutine; invocations share no
//     mutable state.
//   - The registry is read-only during an invocation; registration is
//     append-only and must happen-before any invocation that depends
//     on the new fact.
//
// INVARIANTS:
//   - Branches are produced in constructor declaration order and
//     evaluated in that order; no randomness, no concurrency.
//   - A StructuralMismatch aborts the whole invocation with no partial
//     effect; branch-local failures never do.
type Engine struct {
	reg *decider.Registry
	log *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an Engine that consumes facts from reg. The registry is
// never written by the engine.
func New(reg *decider.Registry, opts ...Option) *Engine {
	e := &Engine{reg: reg, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Uniqueness discharges an obligation stating that two pieces of
// evidence for an indexed predicate are equal, given the caller's
// index count. It either completes with a Result (possibly carrying
// open branches) or aborts entirely with a StructuralMismatch.
func (e *Engine) Uniqueness(ob *goal.Obligation, icount int) (*Result, error) {
	phase := PhaseInit
	e.log.Debug("uniqueness invocation", "obligation", ob.Name, "icount", icount, "phase", phase)

	oriented := goal.Orient(ob)
	phase = PhaseOriented

	an, err := goal.Introspect(oriented, icount)
	if err != nil {
		return nil, NewStructuralMismatch(ob.Name, err)
	}
	phase = PhaseIntrospected
	e.log.Debug("introspected", "obligation", ob.Name, "family", an.Family.Name, "indices", len(an.Indices))

	m, err := motive.Build(an)
	if err != nil {
		return nil, NewStructuralMismatch(ob.Name, err)
	}
	// The target instantiation rewrites the left evidence as itself
	// transported along reflexivity; building it validates that the
	// obligation is definitionally an instance of the motive.
	if _, err := m.Target(an); err != nil {
		return nil, internalErr(ob.Name, "motive target: %v", err)
	}
	phase = PhaseGeneralized

	branches, err := e.split(oriented, an, m)
	if err != nil {
		return nil, err
	}
	phase = PhaseSplit

	id, err := oriented.ID()
	if err != nil {
		return nil, internalErr(ob.Name, "obligation identity: %v", err)
	}

	res := &Result{
		ObligationID: id,
		Name:         ob.Name,
		ICount:       icount,
		Phase:        phase,
		Branches:     branches,
	}
	res.Closed = true
	for _, b := range branches {
		if !b.Closed() {
			res.Closed = false
		}
		e.log.Debug("branch", "obligation", ob.Name, "ctor", b.Ctor, "status", b.Status)
	}
	return res, nil
}

// split case-analyzes the scrutinee under the motive: one branch per
// constructor shape, each carrying a fresh equality hypothesis between
// the original reversed index tuple and that branch's index tuple.
// Each branch is then normalized, destructured, and discharged
// independently.
func (e *Engine) split(ob *goal.Obligation, an *goal.Analysis, m *motive.Motive) ([]BranchReport, error) {
	n := len(an.Indices)
	reports := make([]BranchReport, 0, len(an.Family.Ctors))

	for _, ctor := range an.Family.Ctors {
		if len(ctor.Indices) < n {
			return nil, internalErr(ob.Name, "constructor %s has %d indices, obligation strips %d",
				ctor.Name, len(ctor.Indices), n)
		}
		trailing := ctor.Indices[len(ctor.Indices)-n:]

		// The branch's index tuple reuses the obligation's schema; the
		// hypothesis decides whether the shapes actually coincide.
		tup, err := hlist.FromSlices(an.IndexTypes, trailing)
		if err != nil {
			return nil, internalErr(ob.Name, "branch %s tuple: %v", ctor.Name, err)
		}

		branchGoal, err := m.Instantiate(tup, term.S(ctor.Name))
		if err != nil {
			return nil, internalErr(ob.Name, "branch %s motive: %v", ctor.Name, err)
		}

		reports = append(reports, e.runBranch(an, ctor, branchGoal))
	}
	return reports, nil
}

// runBranch takes one branch from Destructed to its terminal status.
func (e *Engine) runBranch(an *goal.Analysis, ctor term.Ctor, branchGoal term.Term) BranchReport {
	hyp, body, ok := term.MatchGiven(branchGoal)
	if !ok {
		return BranchReport{
			Ctor:     ctor.Name,
			Status:   BranchOpen,
			Reason:   ReasonUnresolved,
			Detail:   "branch goal is not hypothesis-guarded",
			Residual: branchGoal,
		}
	}
	a, b, ok := term.MatchEq(hyp)
	if !ok {
		return BranchReport{
			Ctor:     ctor.Name,
			Status:   BranchOpen,
			Reason:   ReasonUnresolved,
			Detail:   "branch hypothesis is not an equality",
			Residual: branchGoal,
		}
	}

	// Destructure the hypothesis: a vacuous branch closes with no
	// residual obligation.
	if destructure(a, b) == hypContradicted {
		return BranchReport{Ctor: ctor.Name, Status: BranchContradicted}
	}

	// The hypothesis collapsed to reflexivity; substitute it through
	// the branch body.
	collapsed := term.Subst(body, term.HypName, term.Refl())
	return e.discharge(an, collapsed, ctor)
}
