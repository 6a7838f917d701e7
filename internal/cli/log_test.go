package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provlab/hedberg/internal/engine"
	"github.com/provlab/hedberg/internal/store"
)

// seedRunLog writes one run record directly through the store.
func seedRunLog(t *testing.T) (string, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "proof.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := store.NewRun("run-1", 1, &engine.Result{
		ObligationID: "ob-id-1",
		Name:         "token_uniq",
		ICount:       1,
		Phase:        engine.PhaseSplit,
		Closed:       true,
		Branches: []engine.BranchReport{
			{Ctor: "held", Status: engine.BranchDischarged},
		},
	})
	require.NoError(t, err)
	require.NoError(t, st.AppendRun(context.Background(), run))
	return dbPath, "ob-id-1"
}

func TestLogCommand_ByObligation(t *testing.T) {
	dbPath, obligationID := seedRunLog(t)

	out, _, err := execute(t, "log", dbPath, "--obligation-id", obligationID)
	require.NoError(t, err)
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "token_uniq")
	assert.Contains(t, out, "held: discharged")
}

func TestLogCommand_ByRun(t *testing.T) {
	dbPath, _ := seedRunLog(t)

	out, _, err := execute(t, "log", dbPath, "--run", "run-1")
	require.NoError(t, err)
	assert.Contains(t, out, "token_uniq")
}

func TestLogCommand_RunNotFound(t *testing.T) {
	dbPath, _ := seedRunLog(t)

	out, _, err := execute(t, "log", dbPath, "--run", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "run not found")
}

func TestLogCommand_NoFilter(t *testing.T) {
	dbPath, _ := seedRunLog(t)

	_, _, err := execute(t, "log", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLogCommand_MissingDatabase(t *testing.T) {
	out, _, err := execute(t, "log", filepath.Join(t.TempDir(), "nope.db"), "--run", "x")
	require.Error(t, err)
	assert.Contains(t, out, "database not found")
}

func TestLogCommand_EmptyListing(t *testing.T) {
	dbPath, _ := seedRunLog(t)

	out, _, err := execute(t, "log", dbPath, "--obligation-id", "other-ob")
	require.NoError(t, err)
	assert.Contains(t, out, "no runs recorded")
}
