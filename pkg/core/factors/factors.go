package factors

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Factor is a pluggable contributor to a candidate's cost.
// Each factor owns a small running state that lives for a whole scheduling run.
type Factor interface {
	// Name returns a stable identifier, used as the key in a candidate's factor map
	Name() string

	// Weight returns the factor's contribution to the weighted average (non-negative)
	Weight() float64

	// Update is called once per finalized slot, in chronological order, after a rotation
	// has been assigned. Unassigned slots (empty Human) must be tolerated.
	Update(slot model.ScheduleSlot)

	// Cost returns a normalized cost for the candidate covering slotsToFill.
	// Lower is better; values are expected in [0, 1] but may exceed 1 to penalize hard.
	// ok is false when the factor abstains, which excludes it from the average entirely.
	Cost(rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) (cost float64, ok bool)
}

// All returns a fresh instance of every built-in factor
func All(rota *model.Rota) []Factor {
	return []Factor{
		NewCoverage(),
		NewLength(rota),
		NewRecency(rota),
		NewWorkload(rota),
	}
}

// Populate records the factor's cost on the candidate unless the factor abstains
func Populate(f Factor, rota *model.Rota, slotsToFill []timerange.TimeRange, candidate *Candidate) {
	if cost, ok := f.Cost(rota, slotsToFill, candidate); ok {
		candidate.AddFactor(f.Name(), Cost{Cost: cost, Weight: f.Weight()})
	}
}

// Cost is one factor's normalized cost and the weight it carries
type Cost struct {
	Cost   float64
	Weight float64
}

// Candidate is a person being considered for the slots of one rotation
type Candidate struct {
	Human string

	// AvailableSlots has one entry per slot in the rotation
	AvailableSlots []bool

	// Factors maps factor name to the cost it assigned this candidate
	Factors map[string]Cost
}

// NewCandidate creates a candidate with no factor costs yet
func NewCandidate(human string, availableSlots []bool) *Candidate {
	return &Candidate{
		Human:          human,
		AvailableSlots: availableSlots,
		Factors:        make(map[string]Cost),
	}
}

// IsAvailable returns true if the candidate can cover at least one slot
func (c *Candidate) IsAvailable() bool {
	return slices.Contains(c.AvailableSlots, true)
}

// AddFactor records a factor's cost for this candidate
func (c *Candidate) AddFactor(name string, cost Cost) {
	c.Factors[name] = cost
}

// Cost calculates the weighted average of all contributing factors.
// This score is minimized: a lower cost makes the candidate more preferable.
// A candidate with no contributing factors costs 0.
func (c *Candidate) Cost() float64 {
	if len(c.Factors) == 0 {
		return 0
	}

	// Sum in name order so identical inputs always produce identical floats
	var cost, weight float64
	for _, name := range slices.Sorted(maps.Keys(c.Factors)) {
		f := c.Factors[name]
		cost += f.Cost * f.Weight
		weight += f.Weight
	}

	if weight == 0 {
		return 0
	}

	return cost / weight
}

func (c *Candidate) String() string {
	parts := make([]string, 0, len(c.Factors))
	for _, name := range slices.Sorted(maps.Keys(c.Factors)) {
		f := c.Factors[name]
		parts = append(parts, fmt.Sprintf("%s=%.5f*%g", name, f.Cost, f.Weight))
	}
	return fmt.Sprintf("%-20s = %.5f {%s}", c.Human, c.Cost(), strings.Join(parts, ", "))
}
