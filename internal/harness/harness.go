package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/provlab/hedberg/internal/compiler"
	"github.com/provlab/hedberg/internal/engine"
)

// Harness drives scenario execution: it proves each listed obligation
// against a registry seeded from the bundle and collects verdicts.
type Harness struct {
	bundle *compiler.Bundle
	engine *engine.Engine
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario builds a fresh decider registry for isolation: the
// baseline deciders, plus one canonical decider per bundle `deciders`
// entry not listed in omit_deciders.
//
// Execution flow:
//  1. Load and compile the obligation bundle
//  2. Build the registry (baseline + bundle deciders, minus omissions)
//  3. Prove each run step, checking expect clauses inline
//  4. Evaluate assertions against the accumulated verdicts
func Run(scenario *Scenario) (*Result, error) {
	bundle, err := compiler.LoadBundle(scenario.Bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to load bundle: %w", err)
	}

	reg, err := bundle.Registry(scenario.OmitDeciders...)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	h := &Harness{
		bundle: bundle,
		// Suppress logs in tests
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	h.engine = engine.New(reg, engine.WithLogger(h.logger))

	result := NewResult()
	for i, step := range scenario.Runs {
		if err := h.executeRun(i, step, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// executeRun proves one obligation and records its verdict.
func (h *Harness) executeRun(index int, step RunStep, result *Result) error {
	ob, ok := h.bundle.FindObligation(step.Obligation)
	if !ok {
		return fmt.Errorf("runs[%d]: obligation %q not in bundle", index, step.Obligation)
	}

	report, err := h.engine.Uniqueness(ob.Goal(h.bundle), ob.ICount)
	if err != nil {
		return fmt.Errorf("runs[%d]: prove %q: %w", index, step.Obligation, err)
	}
	result.Reports = append(result.Reports, RunReport{
		Obligation: step.Obligation,
		Report:     report,
	})

	if step.Expect != nil {
		checkExpect(index, step, report, result)
	}
	return nil
}

// checkExpect validates a run's inline expectations. Failures are
// recorded on the result rather than aborting the scenario, so a
// single scenario can surface every mismatch at once.
func checkExpect(index int, step RunStep, report *engine.Result, result *Result) {
	if report.Closed != step.Expect.Closed {
		result.AddError(fmt.Sprintf(
			"runs[%d] %s: closed = %v, expected %v",
			index, step.Obligation, report.Closed, step.Expect.Closed))
	}

	for _, want := range step.Expect.Branches {
		branch, ok := findBranch(report, want.Ctor)
		if !ok {
			result.AddError(fmt.Sprintf(
				"runs[%d] %s: no branch for ctor %q",
				index, step.Obligation, want.Ctor))
			continue
		}
		if string(branch.Status) != want.Status {
			result.AddError(fmt.Sprintf(
				"runs[%d] %s: branch %q status = %s, expected %s",
				index, step.Obligation, want.Ctor, branch.Status, want.Status))
		}
		if want.Reason != "" && string(branch.Reason) != want.Reason {
			result.AddError(fmt.Sprintf(
				"runs[%d] %s: branch %q reason = %s, expected %s",
				index, step.Obligation, want.Ctor, branch.Reason, want.Reason))
		}
	}
}

func findBranch(report *engine.Result, ctor string) (engine.BranchReport, bool) {
	for _, b := range report.Branches {
		if b.Ctor == ctor {
			return b, true
		}
	}
	return engine.BranchReport{}, false
}
