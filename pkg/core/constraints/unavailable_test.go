package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

func TestUnavailable_SplitsRange(t *testing.T) {
	c := NewUnavailable(date(2020, 1, 2), date(2020, 1, 4))

	result := c.SuitableRanges(span(date(2020, 1, 1), date(2020, 1, 7)))

	expected := []timerange.TimeRange{
		span(date(2020, 1, 1), date(2020, 1, 2)),
		span(dateTime(2020, 1, 4, 23, 59, 59), date(2020, 1, 7)),
	}
	assert.Equal(t, expected, result)
}

func TestUnavailable_CoversStartOfRange(t *testing.T) {
	c := NewUnavailable(date(2020, 1, 1), date(2020, 1, 1))

	result := c.SuitableRanges(span(date(2020, 1, 1), date(2020, 1, 3)))

	assert.Equal(t, []timerange.TimeRange{span(dateTime(2020, 1, 1, 23, 59, 59), date(2020, 1, 3))}, result)
}

func TestUnavailable_CoversEndOfRange(t *testing.T) {
	c := NewUnavailable(date(2020, 1, 2), date(2020, 1, 10))

	result := c.SuitableRanges(span(date(2020, 1, 1), date(2020, 1, 3)))

	assert.Equal(t, []timerange.TimeRange{span(date(2020, 1, 1), date(2020, 1, 2))}, result)
}

func TestUnavailable_CoversWholeRange(t *testing.T) {
	c := NewUnavailable(date(2019, 12, 23), date(2020, 1, 2))

	result := c.SuitableRanges(span(dateTime(2020, 1, 2, 9, 0, 0), dateTime(2020, 1, 2, 17, 0, 0)))

	assert.Empty(t, result)
}

func TestUnavailable_NoConflict(t *testing.T) {
	c := NewUnavailable(date(2020, 2, 1), date(2020, 2, 3))
	r := span(dateTime(2020, 1, 2, 9, 0, 0), dateTime(2020, 1, 2, 17, 0, 0))

	assert.Equal(t, []timerange.TimeRange{r}, c.SuitableRanges(r))
}

func TestUnavailable_TouchingConflictKeepsRange(t *testing.T) {
	c := NewUnavailable(date(2020, 1, 3), date(2020, 1, 4))
	r := span(date(2020, 1, 1), date(2020, 1, 3))

	assert.Equal(t, []timerange.TimeRange{r}, c.SuitableRanges(r))
}
