package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

func TestCoverage_FullCoverageCostsNothing(t *testing.T) {
	slots := []timerange.TimeRange{slot(2, "").Time, slot(3, "").Time}

	cost, ok := NewCoverage().Cost(testRota("alice"), slots, NewCandidate("alice", []bool{true, true}))
	require.True(t, ok)
	assert.Equal(t, 0.0, cost)
}

func TestCoverage_PartialCoverage(t *testing.T) {
	slots := []timerange.TimeRange{
		timerange.New(at(2, 9), at(2, 17)),
		timerange.New(at(3, 9), at(3, 11)),
	}

	// Covers only the 2 hour slot out of 10
	cost, ok := NewCoverage().Cost(testRota("alice"), slots, NewCandidate("alice", []bool{false, true}))
	require.True(t, ok)
	assert.InDelta(t, 0.8, cost, 1e-12)
}

func TestCoverage_AbstainsWhenNothingCovered(t *testing.T) {
	slots := []timerange.TimeRange{slot(2, "").Time}

	_, ok := NewCoverage().Cost(testRota("alice"), slots, NewCandidate("alice", []bool{false}))
	assert.False(t, ok)
}

func TestCoverage_UpdateIsNoop(t *testing.T) {
	f := NewCoverage()
	f.Update(slot(2, "alice"))

	cost, ok := f.Cost(testRota("alice"), []timerange.TimeRange{slot(3, "").Time}, NewCandidate("alice", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 0.0, cost)
}
