package db

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// RunStore defines the interface for saving and listing scheduling runs
type RunStore interface {
	GetRuns(ctx context.Context) ([]Run, error)
	InsertRun(ctx context.Context, run *Run, assignments []Assignment) error
}

// WorkloadStore defines the interface for reading past assignments
type WorkloadStore interface {
	// GetAssignmentsBefore returns assignments ending at or before the given time,
	// newest run first
	GetAssignmentsBefore(ctx context.Context, before time.Time) ([]Assignment, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	RunStore
	WorkloadStore
	// GetRun returns ErrNotFound when no run has the given id
	GetRun(ctx context.Context, id string) (*Run, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
	RunMigrations(ctx context.Context) error
	Close()
}
