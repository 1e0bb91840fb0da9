package factors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
)

func TestWorkload_AbstainsWhenAllEqual(t *testing.T) {
	rota := testRota("alice", "bob")
	_, ok := NewWorkload(rota).Cost(rota, nil, NewCandidate("alice", []bool{true}))
	assert.False(t, ok)
}

func TestWorkload_AccumulatesAssignedTime(t *testing.T) {
	rota := testRota("alice", "bob", "claire")
	f := NewWorkload(rota)
	f.Update(slot(2, "alice"))
	f.Update(slot(3, "alice"))
	f.Update(slot(4, "bob"))
	f.Update(slot(5, ""))

	assert.Equal(t, 16*time.Hour, f.Total("alice"))
	assert.Equal(t, 8*time.Hour, f.Total("bob"))
	assert.Equal(t, time.Duration(0), f.Total("claire"))

	cost, ok := f.Cost(rota, nil, NewCandidate("bob", []bool{true}))
	require.True(t, ok)
	assert.InDelta(t, 0.5, cost, 1e-12)

	cost, ok = f.Cost(rota, nil, NewCandidate("claire", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 0.0, cost)
}

func TestWorkload_SeededFromPriorWorkload(t *testing.T) {
	rota := testRota("alice", "bob")
	rota.People["alice"] = model.Person{PriorWorkload: 10 * time.Hour}
	f := NewWorkload(rota)

	assert.Equal(t, 10*time.Hour, f.Total("alice"))

	cost, ok := f.Cost(rota, nil, NewCandidate("alice", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 1.0, cost)

	// Once bob has worked more, alice becomes the cheapest
	f.Update(slot(2, "bob"))
	f.Update(model.ScheduleSlot{Time: slot(3, "").Time, Human: "bob"})
	cost, ok = f.Cost(rota, nil, NewCandidate("alice", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 0.0, cost)
}
