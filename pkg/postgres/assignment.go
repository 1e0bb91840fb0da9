package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/oncall-rota/pkg/db"
)

// GetAssignments retrieves the assignments of one run in slot order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, slot_start, slot_end, human
		FROM assignment
		WHERE run_id = $1
		ORDER BY slot_start, slot_end
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	return scanAssignments(rows)
}

// GetAssignmentsBefore retrieves every assignment ending at or before the given time,
// newest run first
func (d *DB) GetAssignmentsBefore(ctx context.Context, before time.Time) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.run_id, a.slot_start, a.slot_end, a.human
		FROM assignment a
		JOIN run r ON r.id = a.run_id
		WHERE a.slot_end <= $1
		ORDER BY r.created_at DESC, a.slot_start
	`, before.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}

	return scanAssignments(rows)
}

func scanAssignments(rows pgx.Rows) ([]db.Assignment, error) {
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var human *string
		if err := rows.Scan(&a.ID, &a.RunID, &a.Start, &a.End, &human); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if human != nil {
			a.Human = *human
		}
		a.Start, a.End = a.Start.UTC(), a.End.UTC()
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
