package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlab/hedberg/internal/engine"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
	require.NoError(t, err)
	return scenario
}

func TestRun_MemCloses(t *testing.T) {
	scenario := loadTestScenario(t, "mem_closes.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	report, ok := result.ReportFor("mem_uniq")
	require.True(t, ok)
	assert.True(t, report.Closed)
	require.Len(t, report.Branches, 1)
	assert.Equal(t, engine.BranchDischarged, report.Branches[0].Status)
}

func TestRun_TokenCloses(t *testing.T) {
	scenario := loadTestScenario(t, "token_closes.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_TokenMissingDecider(t *testing.T) {
	scenario := loadTestScenario(t, "token_missing_decider.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	report, ok := result.ReportFor("token_uniq")
	require.True(t, ok)
	assert.False(t, report.Closed)
	require.Len(t, report.Branches, 1)
	assert.Equal(t, engine.BranchOpen, report.Branches[0].Status)
	assert.Equal(t, engine.ReasonMissingDecider, report.Branches[0].Reason)
	assert.Equal(t, "key", report.Branches[0].Detail)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	scenario := loadTestScenario(t, "token_closes.yaml")
	// Flip the expectation: the run will close, the scenario expects open.
	scenario.Runs[0].Expect.Closed = false

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "closed = true, expected false")
}

func TestRun_UnknownObligation(t *testing.T) {
	scenario := loadTestScenario(t, "token_closes.yaml")
	scenario.Runs[0].Obligation = "nonexistent"

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in bundle")
}

func TestRun_OmittedBaselineTypeStaysCovered(t *testing.T) {
	// Omitting "unit" cannot uncover it: the baseline registry already
	// carries the unit fact, and registries are append-only.
	scenario := loadTestScenario(t, "mem_closes.yaml")
	scenario.OmitDeciders = []string{"unit"}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
