package timerange

import (
	"fmt"
	"slices"
	"time"
)

// Layout is the timestamp format used when rendering ranges
const Layout = "2006-01-02 15:04:05"

// TimeRange is a closed span of time between Start and End (Start <= End).
// A range where Start == End is zero-length and contributes no time.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// New creates a TimeRange from two timestamps
func New(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// IsZero returns true if the range has no length
func (r TimeRange) IsZero() bool {
	return r.Start.Equal(r.End)
}

// Contains reports whether t falls within the range, inclusive on both ends
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Len returns the duration covered by the range
func (r TimeRange) Len() time.Duration {
	return r.End.Sub(r.Start)
}

// Contiguous reports whether the two ranges overlap or touch
func (r TimeRange) Contiguous(other TimeRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Intersection returns the overlap of the two ranges.
// Touching ranges produce a zero-length result; ok is false only when they are strictly disjoint.
func (r TimeRange) Intersection(other TimeRange) (TimeRange, bool) {
	if !r.Contiguous(other) {
		return TimeRange{}, false
	}

	return TimeRange{
		Start: latest(r.Start, other.Start),
		End:   earliest(r.End, other.End),
	}, true
}

// Union returns the smallest range covering both ranges.
// Ranges that neither overlap nor touch cannot be unioned.
func (r TimeRange) Union(other TimeRange) (TimeRange, bool) {
	if !r.Contiguous(other) {
		return TimeRange{}, false
	}

	return TimeRange{
		Start: earliest(r.Start, other.Start),
		End:   latest(r.End, other.End),
	}, true
}

// Equal reports whether both ranges cover exactly the same instants
func (r TimeRange) Equal(other TimeRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// Compare orders ranges by start, then by end
func Compare(a, b TimeRange) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	return a.End.Compare(b.End)
}

// Sort sorts ranges in place by (Start, End)
func Sort(ranges []TimeRange) {
	slices.SortFunc(ranges, Compare)
}

// Search reports whether target is present in ranges, which must be sorted by Compare
func Search(ranges []TimeRange, target TimeRange) bool {
	_, found := slices.BinarySearchFunc(ranges, target, Compare)
	return found
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format(Layout), r.End.Format(Layout))
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
