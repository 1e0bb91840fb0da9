package constraints

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

func dateTime(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return dateTime(year, month, day, 0, 0, 0)
}

func span(start, end time.Time) timerange.TimeRange {
	return timerange.New(start, end)
}

// totalCoverage sums the time covered by a set of disjoint ranges
func totalCoverage(ranges []timerange.TimeRange) time.Duration {
	var total time.Duration
	for _, r := range ranges {
		total += r.Len()
	}
	return total
}

// merge sorts ranges and joins any that touch or overlap
func merge(ranges []timerange.TimeRange) []timerange.TimeRange {
	sorted := append([]timerange.TimeRange(nil), ranges...)
	timerange.Sort(sorted)

	var result []timerange.TimeRange
	for _, r := range sorted {
		if n := len(result); n > 0 {
			if merged, ok := result[n-1].Union(r); ok {
				result[n-1] = merged
				continue
			}
		}
		result = append(result, r)
	}
	return result
}
