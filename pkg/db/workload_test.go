package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, hour int) time.Time {
	return time.Date(2023, time.January, day, hour, 0, 0, 0, time.UTC)
}

func TestWorkload_SumsPerPerson(t *testing.T) {
	assignments := []Assignment{
		{RunID: "run-1", Start: at(2, 9), End: at(2, 17), Human: "alice"},
		{RunID: "run-1", Start: at(3, 9), End: at(3, 17), Human: "bob"},
		{RunID: "run-1", Start: at(4, 9), End: at(4, 17), Human: "alice"},
	}

	assert.Equal(t, map[string]time.Duration{
		"alice": 16 * time.Hour,
		"bob":   8 * time.Hour,
	}, Workload(assignments))
}

func TestWorkload_SkipsGaps(t *testing.T) {
	assignments := []Assignment{
		{RunID: "run-1", Start: at(2, 9), End: at(2, 17)},
		{RunID: "run-1", Start: at(3, 9), End: at(3, 17), Human: "bob"},
	}

	workload := Workload(assignments)
	assert.NotContains(t, workload, "")
	assert.Equal(t, 8*time.Hour, workload["bob"])
}

func TestWorkload_NewestRunWins(t *testing.T) {
	assignments := []Assignment{
		// Newest run first
		{RunID: "run-2", Start: at(2, 9), End: at(2, 17), Human: "bob"},
		{RunID: "run-1", Start: at(2, 9), End: at(2, 17), Human: "alice"},
		{RunID: "run-1", Start: at(3, 9), End: at(3, 17), Human: "alice"},
	}

	assert.Equal(t, map[string]time.Duration{
		"alice": 8 * time.Hour,
		"bob":   8 * time.Hour,
	}, Workload(assignments))
}

func TestWorkload_Empty(t *testing.T) {
	assert.Empty(t, Workload(nil))
}
