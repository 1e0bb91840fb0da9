package scheduler

import (
	"cmp"
	"iter"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/factors"
	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Scheduler assigns people to rotations using a set of cost factors.
// Factor state accumulates across rotations, so a Scheduler serves a single run.
type Scheduler struct {
	rota    *model.Rota
	factors []factors.Factor
	logger  *zap.Logger
}

// New creates a scheduler with every built-in factor
func New(rota *model.Rota, logger *zap.Logger) *Scheduler {
	return NewWithFactors(rota, factors.All(rota), logger)
}

// NewWithFactors creates a scheduler that scores candidates with the given factors only
func NewWithFactors(rota *model.Rota, fs []factors.Factor, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		rota:    rota,
		factors: fs,
		logger:  logger,
	}
}

// Schedule builds the schedule for [start, end).
//
// The period is narrowed by the global constraints, grouped into rotations of
// ShiftDays eligible ranges each, and every rotation is assigned greedily.
// Slots nobody can cover are returned with an empty Human. An empty period has no slots.
func (s *Scheduler) Schedule(start, end time.Time) []model.ScheduleSlot {
	period := timerange.New(start, end)
	eligible := constraints.Filter(s.rota.Constraints, func(yield func(timerange.TimeRange) bool) {
		if period.Len() > 0 {
			yield(period)
		}
	})

	s.logger.Debug("Scheduling period",
		zap.Stringer("period", period),
		zap.Int("shift_days", s.rota.ShiftDays()),
		zap.Int("people", len(s.rota.People)))

	schedule := make([]model.ScheduleSlot, 0)
	rotations := 0
	for rotation := range chunk(eligible, s.rota.ShiftDays()) {
		schedule = append(schedule, s.scheduleRotation(rotation)...)
		rotations++
	}

	s.logger.Debug("Finished scheduling",
		zap.Int("rotations", rotations),
		zap.Int("slots", len(schedule)))

	return schedule
}

// scheduleRotation fills the slots of one rotation and feeds the result to every factor
func (s *Scheduler) scheduleRotation(slots []timerange.TimeRange) []model.ScheduleSlot {
	candidates := s.rankCandidates(slots)

	if ce := s.logger.Check(zap.DebugLevel, "Candidates for rotation"); ce != nil {
		lines := make([]string, len(candidates))
		for i, c := range candidates {
			lines[i] = c.String()
		}
		ce.Write(
			zap.Stringer("from", slots[0]),
			zap.Int("slots", len(slots)),
			zap.Strings("candidates", lines))
	}

	result := make([]model.ScheduleSlot, len(slots))
	for i, slot := range slots {
		result[i] = model.ScheduleSlot{Time: slot}
	}

	remaining := len(slots)
	for _, candidate := range candidates {
		for i, available := range candidate.AvailableSlots {
			if available && !result[i].IsAssigned() {
				result[i].Human = candidate.Human
				remaining--
			}
		}
		if remaining == 0 {
			break
		}
	}

	if remaining > 0 {
		s.logger.Debug("Rotation has unassigned slots",
			zap.Stringer("from", slots[0]),
			zap.Int("unassigned", remaining))
	}

	for _, slot := range result {
		for _, f := range s.factors {
			f.Update(slot)
		}
	}

	return result
}

// rankCandidates scores everyone who can cover at least one slot, cheapest first.
// Ties are broken by person identifier.
func (s *Scheduler) rankCandidates(slots []timerange.TimeRange) []*factors.Candidate {
	candidates := make([]*factors.Candidate, 0, len(s.rota.People))
	for _, human := range s.rota.PersonIDs() {
		candidate := factors.NewCandidate(human, possibleCoverage(s.rota.People[human], slots))
		if !candidate.IsAvailable() {
			continue
		}

		for _, f := range s.factors {
			factors.Populate(f, s.rota, slots, candidate)
		}
		candidates = append(candidates, candidate)
	}

	costs := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		costs[c.Human] = c.Cost()
	}

	slices.SortFunc(candidates, func(a, b *factors.Candidate) int {
		if c := cmp.Compare(costs[a.Human], costs[b.Human]); c != 0 {
			return c
		}
		return strings.Compare(a.Human, b.Human)
	})

	return candidates
}

// possibleCoverage marks the slots the person's constraints leave untouched
func possibleCoverage(person model.Person, slots []timerange.TimeRange) []bool {
	filtered := constraints.Apply(person.Constraints, slots)
	timerange.Sort(filtered)

	available := make([]bool, len(slots))
	for i, slot := range slots {
		available[i] = timerange.Search(filtered, slot)
	}
	return available
}

// chunk groups consecutive ranges into slices of size n; the last may be shorter
func chunk(seq iter.Seq[timerange.TimeRange], n int) iter.Seq[[]timerange.TimeRange] {
	return func(yield func([]timerange.TimeRange) bool) {
		batch := make([]timerange.TimeRange, 0, n)
		for r := range seq {
			batch = append(batch, r)
			if len(batch) == n {
				if !yield(batch) {
					return
				}
				batch = make([]timerange.TimeRange, 0, n)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}
