package harness

import "github.com/provlab/hedberg/internal/engine"

// RunReport pairs an obligation name with its engine verdict.
type RunReport struct {
	Obligation string
	Report     *engine.Result
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: all expect clauses and
	// assertions matched.
	Pass bool

	// Reports holds the per-obligation verdicts in run order.
	Reports []RunReport

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Reports: []RunReport{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// ReportFor returns the verdict for an obligation name, if recorded.
func (r *Result) ReportFor(obligation string) (*engine.Result, bool) {
	for _, rep := range r.Reports {
		if rep.Obligation == obligation {
			return rep.Report, true
		}
	}
	return nil, false
}
