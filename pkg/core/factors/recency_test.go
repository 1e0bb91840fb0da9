package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecency_AbstainsWhenAllEqual(t *testing.T) {
	rota := testRota("alice", "bob")
	_, ok := NewRecency(rota).Cost(rota, nil, NewCandidate("alice", []bool{true}))
	assert.False(t, ok)
}

func TestRecency_AbstainsForUnknownPerson(t *testing.T) {
	rota := testRota("alice", "bob")
	f := NewRecency(rota)
	f.Update(slot(2, "alice"))

	_, ok := f.Cost(rota, nil, NewCandidate("mallory", []bool{true}))
	assert.False(t, ok)
}

func TestRecency_MostRecentCostsMost(t *testing.T) {
	rota := testRota("alice", "bob", "claire")
	f := NewRecency(rota)
	f.Update(slot(2, "alice"))

	cost, ok := f.Cost(rota, nil, NewCandidate("alice", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 1.0, cost)

	cost, ok = f.Cost(rota, nil, NewCandidate("bob", []bool{true}))
	require.True(t, ok)
	assert.Equal(t, 0.0, cost)
}

func TestRecency_Normalized(t *testing.T) {
	rota := testRota("alice", "bob", "claire")
	f := NewRecency(rota)
	f.Update(slot(2, "alice"))
	f.Update(slot(4, "bob"))
	f.Update(slot(6, "claire"))

	cost, ok := f.Cost(rota, nil, NewCandidate("bob", []bool{true}))
	require.True(t, ok)
	assert.InDelta(t, 0.5, cost, 1e-12)
}

func TestRecency_IgnoresUnassigned(t *testing.T) {
	rota := testRota("alice", "bob")
	f := NewRecency(rota)
	f.Update(slot(2, ""))

	_, ok := f.Cost(rota, nil, NewCandidate("alice", []bool{true}))
	assert.False(t, ok)
}
