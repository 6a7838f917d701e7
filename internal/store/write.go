package store

import (
	"context"
	"fmt"
)

// AppendRun inserts a run and its branches in a single transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same
// run twice is a no-op, and the branches of a duplicate run are not
// re-inserted.
//
// Branch residuals and witnesses are stored as canonical JSON so
// replays read back identical bytes.
func (s *Store) AppendRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, obligation_id, name, icount, phase, closed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		run.ObligationID,
		run.Name,
		run.ICount,
		string(run.Phase),
		boolToInt(run.Closed),
	)
	if err != nil {
		return fmt.Errorf("append run: insert run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append run: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Run already recorded, branches with it.
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("append run: commit (existing): %w", err)
		}
		return nil
	}

	for _, b := range run.Branches {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO branches
			(run_id, position, ctor, status, reason, detail, residual, witness)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			b.Position,
			b.Ctor,
			string(b.Status),
			string(b.Reason),
			b.Detail,
			b.ResidualJSON,
			b.WitnessJSON,
		)
		if err != nil {
			return fmt.Errorf("append run: insert branch %d: %w", b.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append run: commit: %w", err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
