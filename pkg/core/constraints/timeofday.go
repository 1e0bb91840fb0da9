package constraints

import (
	"fmt"
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// TimeOfDay is satisfied during a daily clock window.
// Start and End are offsets from midnight. When Start >= End the window wraps past
// midnight into the following day, so 17:00-09:00 covers the night.
type TimeOfDay struct {
	Start time.Duration
	End   time.Duration
}

// NewTimeOfDay creates a TimeOfDay constraint from two offsets from midnight
func NewTimeOfDay(start, end time.Duration) TimeOfDay {
	return TimeOfDay{Start: start, End: end}
}

// Wraps reports whether the window crosses midnight
func (c TimeOfDay) Wraps() bool {
	return c.Start >= c.End
}

// window returns the clock window that opens on the given day
func (c TimeOfDay) window(day time.Time) timerange.TimeRange {
	end := day.Add(c.End)
	if c.Wraps() {
		end = nextDay(day).Add(c.End)
	}
	return timerange.New(day.Add(c.Start), end)
}

// SuitableRanges intersects r with the window opening on each calendar day from the
// day containing r.Start until r.End.
func (c TimeOfDay) SuitableRanges(r timerange.TimeRange) []timerange.TimeRange {
	var result []timerange.TimeRange

	for day := startOfDay(r.Start); !day.After(r.End); day = nextDay(day) {
		intersection, ok := r.Intersection(c.window(day))
		if ok && !intersection.IsZero() {
			result = append(result, intersection)
		}
	}

	return result
}

func (c TimeOfDay) String() string {
	return fmt.Sprintf("available between %s and %s", formatClock(c.Start), formatClock(c.End))
}
