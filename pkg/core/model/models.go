package model

import (
	"maps"
	"slices"
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Day is the unit shift lengths are expressed in
const Day = 24 * time.Hour

// Person holds one person's availability rules and the workload they carry into the run
type Person struct {
	// Constraints are applied in order to narrow the slots this person can cover
	Constraints []constraints.Constraint

	// PriorWorkload is time already worked before this run, used to seed fairness
	PriorWorkload time.Duration
}

// Rota is the immutable input to a scheduling run
type Rota struct {
	// ShiftLength is the length of one rotation in whole days
	ShiftLength time.Duration

	// Constraints apply to everyone and carve the period into eligible ranges
	Constraints []constraints.Constraint

	// People maps a person identifier to their availability
	People map[string]Person
}

// ShiftDays returns the number of eligible ranges grouped into one rotation.
// Non-positive shift lengths are clamped to one.
func (r *Rota) ShiftDays() int {
	return max(int(r.ShiftLength/Day), 1)
}

// PersonIDs returns all person identifiers in lexicographic order
func (r *Rota) PersonIDs() []string {
	return slices.Sorted(maps.Keys(r.People))
}

// ScheduleSlot is one time range of the final schedule and the person covering it.
// An empty Human means nobody could be assigned.
type ScheduleSlot struct {
	Time  timerange.TimeRange
	Human string
}

// IsAssigned returns true if someone covers the slot
func (s ScheduleSlot) IsAssigned() bool {
	return s.Human != ""
}

// HasUnassigned returns true if any slot in the schedule has no assignee
func HasUnassigned(schedule []ScheduleSlot) bool {
	return slices.ContainsFunc(schedule, func(s ScheduleSlot) bool {
		return !s.IsAssigned()
	})
}
