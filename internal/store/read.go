package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ListRuns returns all runs for an obligation identity.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC
// COLLATE BINARY, so replays see identical sequences.
//
// Returns an empty slice (not nil) if no runs exist for the identity.
func (s *Store) ListRuns(ctx context.Context, obligationID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, obligation_id, name, icount, phase, closed
		FROM runs
		WHERE obligation_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, obligationID)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		branches, err := s.readBranches(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Branches = branches
	}

	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}

// GetRun retrieves a single run by ID, branches included.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, obligation_id, name, icount, phase, closed
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRunRow(row)
	if err != nil {
		return Run{}, err
	}

	branches, err := s.readBranches(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	run.Branches = branches
	return run, nil
}

// LastSeq returns the highest sequence number in the log, or 0 for an
// empty log. Used to resume the logical clock across process restarts.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// readBranches returns a run's branches in position order.
func (s *Store) readBranches(ctx context.Context, runID string) ([]Branch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, ctor, status, reason, detail, residual, witness
		FROM branches
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query branches: %w", err)
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate branches: %w", err)
	}
	return branches, nil
}
