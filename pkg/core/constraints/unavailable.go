package constraints

import (
	"fmt"
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

// endOfDay is the last second covered by an unavailable date
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// Unavailable excludes the calendar days from Start to End inclusive.
// It holds everywhere outside [Start 00:00:00, End 23:59:59].
type Unavailable struct {
	Start time.Time
	End   time.Time
}

// NewUnavailable creates an Unavailable constraint for the given dates
func NewUnavailable(start, end time.Time) Unavailable {
	return Unavailable{Start: startOfDay(start), End: startOfDay(end)}
}

// Exclusion returns the span of time the constraint rules out
func (c Unavailable) Exclusion() timerange.TimeRange {
	return timerange.New(startOfDay(c.Start), startOfDay(c.End).Add(endOfDay))
}

// SuitableRanges removes the exclusion window from r, keeping whatever remains on either side
func (c Unavailable) SuitableRanges(r timerange.TimeRange) []timerange.TimeRange {
	conflict, ok := r.Intersection(c.Exclusion())
	if !ok || conflict.IsZero() {
		return []timerange.TimeRange{r}
	}

	var result []timerange.TimeRange

	if before := timerange.New(r.Start, conflict.Start); !before.IsZero() {
		result = append(result, before)
	}

	if after := timerange.New(conflict.End, r.End); !after.IsZero() {
		result = append(result, after)
	}

	return result
}

func (c Unavailable) String() string {
	return fmt.Sprintf("unavailable from %s to %s", c.Start.Format(time.DateOnly), c.End.Format(time.DateOnly))
}
