package constraints

import (
	"iter"
	"slices"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// Constraint is an availability rule. Given a time range it yields the ordered,
// disjoint sub-ranges during which the rule holds.
//
// The set of implementations is closed: Unconstrained, DayOfWeek, TimeOfDay and Unavailable.
type Constraint interface {
	// SuitableRanges returns the chronologically ordered parts of r during which the
	// constraint is satisfied. Zero-length parts are never returned.
	SuitableRanges(r timerange.TimeRange) []timerange.TimeRange

	// String describes the constraint for humans
	String() string

	constraint()
}

// Unconstrained is always satisfied
type Unconstrained struct{}

func (Unconstrained) SuitableRanges(r timerange.TimeRange) []timerange.TimeRange {
	return []timerange.TimeRange{r}
}

func (Unconstrained) String() string {
	return "always available"
}

func (Unconstrained) constraint() {}
func (DayOfWeek) constraint()     {}
func (TimeOfDay) constraint()     {}
func (Unavailable) constraint()   {}

// Filter lazily narrows ranges by each constraint in turn.
// The result covers exactly the time during which every constraint holds.
func Filter(constraints []Constraint, ranges iter.Seq[timerange.TimeRange]) iter.Seq[timerange.TimeRange] {
	for _, c := range constraints {
		ranges = flatMap(c, ranges)
	}
	return ranges
}

// Apply folds the constraints over ranges and returns the surviving ranges
func Apply(constraints []Constraint, ranges []timerange.TimeRange) []timerange.TimeRange {
	return slices.Collect(Filter(constraints, slices.Values(ranges)))
}

func flatMap(c Constraint, source iter.Seq[timerange.TimeRange]) iter.Seq[timerange.TimeRange] {
	return func(yield func(timerange.TimeRange) bool) {
		for r := range source {
			for _, suitable := range c.SuitableRanges(r) {
				if !yield(suitable) {
					return
				}
			}
		}
	}
}
