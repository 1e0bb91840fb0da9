package db

import "time"

// Run is one saved scheduling run
type Run struct {
	ID          string
	Start       time.Time
	End         time.Time
	ShiftLength int
	CreatedAt   time.Time
}

// Assignment is one slot of a saved run. An empty Human marks a coverage gap.
type Assignment struct {
	ID    string
	RunID string
	Start time.Time
	End   time.Time
	Human string
}

// Len returns the duration of the assignment
func (a Assignment) Len() time.Duration {
	return a.End.Sub(a.Start)
}
