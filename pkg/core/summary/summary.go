package summary

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
)

// Summary describes how load is spread across a finished schedule.
// A shift is a run of consecutive slots covered by the same person.
type Summary struct {
	// Workload is the total assigned time per person
	Workload map[string]time.Duration

	// LongestShift is the longest run of consecutive slots per person
	LongestShift map[string]time.Duration

	// Histogram counts shifts by their length in whole hours
	Histogram map[int]int

	// Unassigned is the total time nobody covers
	Unassigned time.Duration
}

// Stats holds the spread of a set of durations
type Stats struct {
	Min time.Duration
	Avg time.Duration
	Max time.Duration
}

// New summarizes a schedule. People listed in people but never assigned
// are reported with zero workload so they count towards the spread.
func New(schedule []model.ScheduleSlot, people []string) *Summary {
	s := &Summary{
		Workload:     make(map[string]time.Duration),
		LongestShift: make(map[string]time.Duration),
		Histogram:    make(map[int]int),
	}
	for _, human := range people {
		s.Workload[human] = 0
		s.LongestShift[human] = 0
	}

	var holder string
	var run time.Duration
	for _, slot := range schedule {
		length := slot.Time.Len()

		if !slot.IsAssigned() {
			s.Unassigned += length
			s.endShift(holder, run)
			holder, run = "", 0
			continue
		}

		s.Workload[slot.Human] += length

		if slot.Human == holder {
			run += length
		} else {
			s.endShift(holder, run)
			holder, run = slot.Human, length
		}

		if run > s.LongestShift[holder] {
			s.LongestShift[holder] = run
		}
	}
	s.endShift(holder, run)

	return s
}

func (s *Summary) endShift(holder string, run time.Duration) {
	if holder == "" {
		return
	}
	s.Histogram[int(run.Hours())]++
}

// WorkloadStats returns the min, average and max workload
func (s *Summary) WorkloadStats() Stats {
	return stats(slices.Collect(maps.Values(s.Workload)))
}

// LongestShiftStats returns the min, average and max longest shift
func (s *Summary) LongestShiftStats() Stats {
	return stats(slices.Collect(maps.Values(s.LongestShift)))
}

// Spread is the gap between the most and least loaded person
func (s *Summary) Spread() time.Duration {
	st := s.WorkloadStats()
	return st.Max - st.Min
}

func stats(values []time.Duration) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	var total time.Duration
	for _, v := range values {
		total += v
	}

	return Stats{
		Min: slices.Min(values),
		Avg: total / time.Duration(len(values)),
		Max: slices.Max(values),
	}
}

func hours(d time.Duration) int {
	return int(d.Hours())
}

// byHoursDesc orders people by duration, largest first, then by name
func byHoursDesc(values map[string]time.Duration) []string {
	return slices.SortedFunc(maps.Keys(values), func(a, b string) int {
		if c := cmp.Compare(values[b], values[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

func (s *Summary) String() string {
	var b strings.Builder

	wl := s.WorkloadStats()
	fmt.Fprintf(&b, "Workload: (min: %d, avg: %d, max: %d)\n", hours(wl.Min), hours(wl.Avg), hours(wl.Max))
	for _, human := range byHoursDesc(s.Workload) {
		fmt.Fprintf(&b, "  %s: %d hours\n", human, hours(s.Workload[human]))
	}

	ls := s.LongestShiftStats()
	fmt.Fprintf(&b, "\nLongest shift: (min: %d, avg: %d, max: %d)\n", hours(ls.Min), hours(ls.Avg), hours(ls.Max))
	for _, human := range byHoursDesc(s.LongestShift) {
		fmt.Fprintf(&b, "  %s: %d hours\n", human, hours(s.LongestShift[human]))
	}

	fmt.Fprintf(&b, "\nShift length histogram:\n")
	for _, length := range slices.Sorted(maps.Keys(s.Histogram)) {
		fmt.Fprintf(&b, "  %d | %d hours\n", s.Histogram[length], length)
	}

	if s.Unassigned > 0 {
		fmt.Fprintf(&b, "\nUnassigned: %d hours\n", hours(s.Unassigned))
	}

	return b.String()
}
