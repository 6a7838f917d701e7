package store

import (
	"path/filepath"
	"testing"

	"github.com/provlab/hedberg/internal/engine"
)

// createTestStore creates a file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun builds a closed two-branch run record.
func createTestRun(id string, seq int64, obligationID string) Run {
	return Run{
		ID:           id,
		Seq:          seq,
		ObligationID: obligationID,
		Name:         "test_obligation",
		ICount:       1,
		Phase:        engine.PhaseSplit,
		Closed:       true,
		Branches: []Branch{
			{
				Position:    0,
				Ctor:        "mk",
				Status:      engine.BranchDischarged,
				WitnessJSON: `["sym","refl"]`,
			},
			{
				Position: 1,
				Ctor:     "other",
				Status:   engine.BranchContradicted,
			},
		},
	}
}
