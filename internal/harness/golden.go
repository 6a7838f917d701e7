package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot captures the verdicts of a scenario execution for golden
// comparison. Terms render in surface syntax; content hashes are left
// to the proof log, goldens capture the verdict shape.
type Snapshot struct {
	ScenarioName string        `json:"scenario_name"`
	Runs         []RunSnapshot `json:"runs"`
}

// RunSnapshot is one obligation's verdict.
type RunSnapshot struct {
	Obligation string           `json:"obligation"`
	ICount     int              `json:"icount"`
	Closed     bool             `json:"closed"`
	Branches   []BranchSnapshot `json:"branches"`
}

// BranchSnapshot is one constructor branch outcome.
type BranchSnapshot struct {
	Ctor     string `json:"ctor"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Residual string `json:"residual,omitempty"`
	Witness  string `json:"witness,omitempty"`
}

// snapshot converts a result into its golden form.
func snapshot(name string, result *Result) Snapshot {
	snap := Snapshot{ScenarioName: name, Runs: []RunSnapshot{}}
	for _, rep := range result.Reports {
		run := RunSnapshot{
			Obligation: rep.Obligation,
			ICount:     rep.Report.ICount,
			Closed:     rep.Report.Closed,
			Branches:   []BranchSnapshot{},
		}
		for _, b := range rep.Report.Branches {
			bs := BranchSnapshot{
				Ctor:   b.Ctor,
				Status: string(b.Status),
				Reason: string(b.Reason),
				Detail: b.Detail,
			}
			if b.Residual != nil {
				bs.Residual = b.Residual.String()
			}
			if b.Witness != nil {
				bs.Witness = b.Witness.String()
			}
			run.Branches = append(run.Branches, bs)
		}
		snap.Runs = append(snap.Runs, run)
	}
	return snap
}

// RunWithGolden executes a scenario and compares the verdicts against
// a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the verdicts don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-obtained result against a golden
// file, without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := json.MarshalIndent(snapshot(scenarioName, result), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
