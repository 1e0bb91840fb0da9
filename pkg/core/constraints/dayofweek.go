package constraints

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// DayOfWeek is satisfied from midnight to midnight on each listed weekday
type DayOfWeek struct {
	Days []time.Weekday
}

// NewDayOfWeek creates a DayOfWeek constraint for the given weekdays
func NewDayOfWeek(days ...time.Weekday) DayOfWeek {
	return DayOfWeek{Days: days}
}

// Includes reports whether day is one of the allowed weekdays
func (c DayOfWeek) Includes(day time.Weekday) bool {
	return slices.Contains(c.Days, day)
}

// SuitableRanges walks the calendar days overlapping r and keeps the allowed ones.
// Consecutive allowed days are merged into a single range.
func (c DayOfWeek) SuitableRanges(r timerange.TimeRange) []timerange.TimeRange {
	var result []timerange.TimeRange

	var pending timerange.TimeRange
	hasPending := false

	for day := startOfDay(r.Start); day.Before(r.End); day = nextDay(day) {
		if !c.Includes(day.Weekday()) {
			continue
		}

		current, ok := r.Intersection(timerange.New(day, nextDay(day)))
		if !ok || current.IsZero() {
			continue
		}

		if hasPending {
			if merged, ok := pending.Union(current); ok {
				pending = merged
				continue
			}
			result = append(result, pending)
		}

		pending = current
		hasPending = true
	}

	if hasPending {
		result = append(result, pending)
	}

	return result
}

func (c DayOfWeek) String() string {
	names := make([]string, len(c.Days))
	for i, day := range c.Days {
		names[i] = day.String()[:3]
	}
	return fmt.Sprintf("available on [%s]", strings.Join(names, ", "))
}
