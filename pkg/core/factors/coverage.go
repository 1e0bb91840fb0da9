package factors

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Coverage prefers candidates who can cover more of the rotation themselves.
//
// Cost:
//   - 1 - covered/total, where covered sums the slots the candidate is available for
//   - Abstains if the candidate covers nothing
//
// Keeps no state.
type Coverage struct{}

// NewCoverage creates the coverage factor
func NewCoverage() *Coverage {
	return &Coverage{}
}

func (f *Coverage) Name() string {
	return "coverage"
}

func (f *Coverage) Weight() float64 {
	return 5
}

func (f *Coverage) Update(slot model.ScheduleSlot) {
	// No state to update
}

func (f *Coverage) Cost(rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) (float64, bool) {
	var total, covered time.Duration
	for i, slot := range slotsToFill {
		total += slot.Len()
		if i < len(candidate.AvailableSlots) && candidate.AvailableSlots[i] {
			covered += slot.Len()
		}
	}

	if covered == 0 {
		return 0, false
	}

	return 1 - covered.Seconds()/total.Seconds(), true
}
