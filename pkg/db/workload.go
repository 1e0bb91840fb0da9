package db

import (
	"time"
)

type slotKey struct {
	start, end int64
}

// Workload totals assigned time per person.
// When several runs cover the same slot only the first one seen counts, so callers
// pass assignments newest run first and a re-generated period is not counted twice.
func Workload(assignments []Assignment) map[string]time.Duration {
	seen := make(map[slotKey]bool, len(assignments))
	workload := make(map[string]time.Duration)

	for _, a := range assignments {
		key := slotKey{start: a.Start.Unix(), end: a.End.Unix()}
		if seen[key] {
			continue
		}
		seen[key] = true

		if a.Human == "" {
			continue
		}
		workload[a.Human] += a.Len()
	}

	return workload
}
