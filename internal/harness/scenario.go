package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario loads an obligation bundle, proves a set of obligations
// under a controlled decider registry, and asserts on the verdicts.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Bundle is the path to the CUE obligation bundle, relative to the
	// scenario file location.
	Bundle string `yaml:"bundle"`

	// OmitDeciders lists type keys whose bundle decider registrations
	// are skipped. Used to exercise missing-decider behavior.
	OmitDeciders []string `yaml:"omit_deciders,omitempty"`

	// Runs lists the obligations to prove, with optional expectations
	// checked inline as each run completes.
	Runs []RunStep `yaml:"runs"`

	// Assertions validate the accumulated verdicts after all runs.
	// Supported types: closed, open, branch_status, residual_count
	Assertions []Assertion `yaml:"assertions"`
}

// RunStep names one obligation to prove.
type RunStep struct {
	// Obligation is the obligation name within the bundle.
	Obligation string `yaml:"obligation"`

	// Expect specifies the expected verdict.
	// If nil, the run's outcome is recorded but not checked inline.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected run verdict.
type ExpectClause struct {
	// Closed is the expected overall closure.
	Closed bool `yaml:"closed"`

	// Branches are expected per-constructor outcomes. Subset match by
	// ctor name - branches not listed here are not checked.
	Branches []BranchExpect `yaml:"branches,omitempty"`
}

// BranchExpect specifies one expected branch outcome.
type BranchExpect struct {
	Ctor   string `yaml:"ctor"`
	Status string `yaml:"status"`
	Reason string `yaml:"reason,omitempty"`
}

// Assertion validates accumulated verdicts.
type Assertion struct {
	// Type specifies the assertion type:
	// - "closed": the obligation's run closed fully
	// - "open": the obligation's run left at least one branch open
	// - "branch_status": a named branch reached a status (and reason)
	// - "residual_count": the run surfaced exactly N residual goals
	Type string `yaml:"type"`

	// Obligation names the run under assertion. Required for all types.
	Obligation string `yaml:"obligation"`

	// Ctor and Status are used by branch_status.
	Ctor   string `yaml:"ctor,omitempty"`
	Status string `yaml:"status,omitempty"`

	// Reason is an optional refinement for branch_status.
	Reason string `yaml:"reason,omitempty"`

	// Count is the expected residual count (used by residual_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertClosed        = "closed"
	AssertOpen          = "open"
	AssertBranchStatus  = "branch_status"
	AssertResidualCount = "residual_count"
)

// LoadScenario reads and parses a scenario YAML file. The bundle path
// is resolved relative to the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Bundle != "" && !filepath.IsAbs(scenario.Bundle) {
		scenario.Bundle = filepath.Join(filepath.Dir(path), scenario.Bundle)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Bundle == "" {
		return fmt.Errorf("bundle is required")
	}
	if _, err := os.Stat(s.Bundle); os.IsNotExist(err) {
		return fmt.Errorf("bundle file not found: %s", s.Bundle)
	}
	if len(s.Runs) == 0 {
		return fmt.Errorf("runs list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Runs {
		if step.Obligation == "" {
			return fmt.Errorf("runs[%d]: obligation is required", i)
		}
		if step.Expect != nil {
			for j, b := range step.Expect.Branches {
				if b.Ctor == "" {
					return fmt.Errorf("runs[%d].expect.branches[%d]: ctor is required", i, j)
				}
				if b.Status == "" {
					return fmt.Errorf("runs[%d].expect.branches[%d]: status is required", i, j)
				}
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Obligation == "" {
		return fmt.Errorf("assertions[%d]: obligation is required", index)
	}

	switch a.Type {
	case AssertClosed, AssertOpen:
		// Obligation alone suffices.
	case AssertBranchStatus:
		if a.Ctor == "" {
			return fmt.Errorf("assertions[%d]: ctor is required for branch_status", index)
		}
		if a.Status == "" {
			return fmt.Errorf("assertions[%d]: status is required for branch_status", index)
		}
	case AssertResidualCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for residual_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
