package factors

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Recency prefers people who have gone longest without being on call.
// Everyone starts at the Unix epoch; the cost is the candidate's last assignment end,
// normalized between the least and most recent across everyone tracked.
// Abstains while all recencies are equal.
type Recency struct {
	recency map[string]time.Time
}

// NewRecency creates the recency factor, seeding every person at the epoch
func NewRecency(rota *model.Rota) *Recency {
	recency := make(map[string]time.Time, len(rota.People))
	for _, human := range rota.PersonIDs() {
		recency[human] = time.Unix(0, 0).UTC()
	}
	return &Recency{recency: recency}
}

func (f *Recency) Name() string {
	return "recency"
}

func (f *Recency) Weight() float64 {
	return 1
}

func (f *Recency) Update(slot model.ScheduleSlot) {
	if slot.IsAssigned() {
		f.recency[slot.Human] = slot.Time.End
	}
}

func (f *Recency) Cost(rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) (float64, bool) {
	last, ok := f.recency[candidate.Human]
	if !ok {
		return 0, false
	}

	var lo, hi time.Time
	first := true
	for _, t := range f.recency {
		if first || t.Before(lo) {
			lo = t
		}
		if first || t.After(hi) {
			hi = t
		}
		first = false
	}

	spread := hi.Sub(lo)
	if spread == 0 {
		return 0, false
	}

	return last.Sub(lo).Seconds() / spread.Seconds(), true
}
