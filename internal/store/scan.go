package store

import (
	"database/sql"
	"fmt"

	"github.com/provlab/hedberg/internal/engine"
)

// scanRun reads a run row from a multi-row query.
func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var phase string
	var closed int
	err := rows.Scan(
		&run.ID,
		&run.Seq,
		&run.ObligationID,
		&run.Name,
		&run.ICount,
		&phase,
		&closed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Phase = engine.Phase(phase)
	run.Closed = closed != 0
	return run, nil
}

// scanRunRow reads a run from a single-row query, preserving
// sql.ErrNoRows for the caller.
func scanRunRow(row *sql.Row) (Run, error) {
	var run Run
	var phase string
	var closed int
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.ObligationID,
		&run.Name,
		&run.ICount,
		&phase,
		&closed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Phase = engine.Phase(phase)
	run.Closed = closed != 0
	return run, nil
}

func scanBranch(rows *sql.Rows) (Branch, error) {
	var b Branch
	var status, reason string
	err := rows.Scan(
		&b.Position,
		&b.Ctor,
		&status,
		&reason,
		&b.Detail,
		&b.ResidualJSON,
		&b.WitnessJSON,
	)
	if err != nil {
		return Branch{}, fmt.Errorf("scan branch: %w", err)
	}
	b.Status = engine.BranchStatus(status)
	b.Reason = engine.OpenReason(reason)
	return b, nil
}
