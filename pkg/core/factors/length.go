package factors

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Length discourages one person from holding on-call past the configured shift length.
//
// State:
//   - The person holding the most recent run of consecutive assignments, and its length
//   - An unassigned slot ends the run
//
// Cost:
//   - For the current holder: 1 - remaining/limit, exceeding 1 once the run is longer than the limit
//   - For anyone else: 0, to encourage handing over
//   - Abstains while nobody holds a run
type Length struct {
	holder      string
	accumulated time.Duration
	limit       time.Duration
}

// NewLength creates the length factor using the rota's shift length as the limit
func NewLength(rota *model.Rota) *Length {
	return &Length{
		limit: time.Duration(rota.ShiftDays()) * model.Day,
	}
}

func (f *Length) Name() string {
	return "length"
}

func (f *Length) Weight() float64 {
	return 100
}

func (f *Length) Update(slot model.ScheduleSlot) {
	length := slot.Time.Len()
	if f.holder != "" && f.holder == slot.Human {
		length += f.accumulated
	}

	f.holder = slot.Human
	f.accumulated = length
}

func (f *Length) Cost(rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) (float64, bool) {
	if f.holder == "" {
		return 0, false
	}

	if f.holder != candidate.Human {
		return 0, true
	}

	remaining := f.limit - f.accumulated
	return 1 - remaining.Hours()/f.limit.Hours(), true
}
