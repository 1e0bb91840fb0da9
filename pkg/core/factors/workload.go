package factors

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Workload balances the total time each person spends on call.
//
// State:
//   - Cumulative assigned duration per person, seeded with their prior workload
//
// Cost:
//   - The candidate's total normalized between the lowest and highest totals
//   - Abstains while everyone carries the same workload
type Workload struct {
	workload map[string]time.Duration
}

// NewWorkload creates the workload factor seeded from each person's prior workload
func NewWorkload(rota *model.Rota) *Workload {
	workload := make(map[string]time.Duration, len(rota.People))
	for human, person := range rota.People {
		workload[human] = person.PriorWorkload
	}
	return &Workload{workload: workload}
}

func (f *Workload) Name() string {
	return "workload"
}

func (f *Workload) Weight() float64 {
	return 5
}

func (f *Workload) Update(slot model.ScheduleSlot) {
	if slot.IsAssigned() {
		f.workload[slot.Human] += slot.Time.Len()
	}
}

// Total returns the workload tracked for a person so far
func (f *Workload) Total(human string) time.Duration {
	return f.workload[human]
}

func (f *Workload) Cost(rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) (float64, bool) {
	current, ok := f.workload[candidate.Human]
	if !ok {
		return 0, false
	}

	var lo, hi time.Duration
	first := true
	for _, w := range f.workload {
		if first || w < lo {
			lo = w
		}
		if first || w > hi {
			hi = w
		}
		first = false
	}

	spread := hi - lo
	if spread == 0 {
		return 0, false
	}

	return (current - lo).Seconds() / spread.Seconds(), true
}
