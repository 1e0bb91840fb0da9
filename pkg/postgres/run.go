package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/oncall-rota/pkg/db"
)

// GetRuns retrieves all run records, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, period_start, period_end, shift_length, created_at
		FROM run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		if err := rows.Scan(&r.ID, &r.Start, &r.End, &r.ShiftLength, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Start, r.End, r.CreatedAt = r.Start.UTC(), r.End.UTC(), r.CreatedAt.UTC()
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a single run by id
func (d *DB) GetRun(ctx context.Context, id string) (*db.Run, error) {
	// Run ids are UUIDs; anything else cannot match
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("run %q: %w", id, db.ErrNotFound)
	}

	var r db.Run
	err := d.pool.QueryRow(ctx, `
		SELECT id, period_start, period_end, shift_length, created_at
		FROM run
		WHERE id = $1
	`, id).Scan(&r.ID, &r.Start, &r.End, &r.ShiftLength, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run %q: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	r.Start, r.End, r.CreatedAt = r.Start.UTC(), r.End.UTC(), r.CreatedAt.UTC()
	return &r, nil
}

// InsertRun inserts a run and all of its assignments in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO run (id, period_start, period_end, shift_length)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, run.ID, run.Start.UTC(), run.End.UTC(), run.ShiftLength).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range assignments {
		var human *string
		if a.Human != "" {
			human = &a.Human
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, slot_start, slot_end, human)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, run.ID, a.Start.UTC(), a.End.UTC(), human)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
