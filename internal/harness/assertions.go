package harness

import (
	"fmt"
	"strings"

	"github.com/provlab/hedberg/internal/engine"
)

// AssertionError is returned when an assertion fails.
// It includes the full verdict for debugging context.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Report   *engine.Result
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Report != nil {
		fmt.Fprintf(&buf, "\nBranches:\n")
		for i, b := range e.Report.Branches {
			fmt.Fprintf(&buf, "  [%d] %s: %s", i+1, b.Ctor, b.Status)
			if b.Reason != "" {
				fmt.Fprintf(&buf, " (%s)", b.Reason)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the accumulated
// verdicts and returns the failure messages. An empty slice means all
// assertions passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, assertion := range assertions {
		if err := evaluateAssertion(result, assertion); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion) error {
	report, ok := result.ReportFor(a.Obligation)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("a recorded run for obligation %q", a.Obligation),
			Actual:   "no such run",
		}
	}

	switch a.Type {
	case AssertClosed:
		return assertClosed(report, a)
	case AssertOpen:
		return assertOpen(report, a)
	case AssertBranchStatus:
		return assertBranchStatus(report, a)
	case AssertResidualCount:
		return assertResidualCount(report, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertClosed checks that every branch of the run terminal-closed.
func assertClosed(report *engine.Result, a Assertion) error {
	if report.Closed {
		return nil
	}
	return &AssertionError{
		Type:     AssertClosed,
		Expected: fmt.Sprintf("obligation %q fully closed", a.Obligation),
		Actual:   fmt.Sprintf("%d open branch(es)", report.Count(engine.BranchOpen)),
		Report:   report,
	}
}

// assertOpen checks that at least one branch was left open.
func assertOpen(report *engine.Result, a Assertion) error {
	if !report.Closed {
		return nil
	}
	return &AssertionError{
		Type:     AssertOpen,
		Expected: fmt.Sprintf("obligation %q left open", a.Obligation),
		Actual:   "fully closed",
		Report:   report,
	}
}

// assertBranchStatus checks a named branch's status and, when given,
// its open reason.
func assertBranchStatus(report *engine.Result, a Assertion) error {
	branch, ok := findBranch(report, a.Ctor)
	if !ok {
		return &AssertionError{
			Type:     AssertBranchStatus,
			Expected: fmt.Sprintf("a branch for ctor %q", a.Ctor),
			Actual:   "no such branch",
			Report:   report,
		}
	}
	if string(branch.Status) != a.Status {
		return &AssertionError{
			Type:     AssertBranchStatus,
			Expected: fmt.Sprintf("branch %q with status %s", a.Ctor, a.Status),
			Actual:   string(branch.Status),
			Report:   report,
		}
	}
	if a.Reason != "" && string(branch.Reason) != a.Reason {
		return &AssertionError{
			Type:     AssertBranchStatus,
			Expected: fmt.Sprintf("branch %q open for reason %s", a.Ctor, a.Reason),
			Actual:   string(branch.Reason),
			Report:   report,
		}
	}
	return nil
}

// assertResidualCount checks the number of surfaced residual goals.
func assertResidualCount(report *engine.Result, a Assertion) error {
	got := len(report.Residuals())
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertResidualCount,
		Expected: fmt.Sprintf("%d residual(s) for obligation %q", a.Count, a.Obligation),
		Actual:   fmt.Sprintf("%d residual(s)", got),
		Report:   report,
	}
}
