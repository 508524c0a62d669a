package services

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutcomeTableValidation(t *testing.T) {
	_, err := NewOutcomeTable(nil)
	assert.Error(t, err)

	_, err = NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 0.5},
		{Result: ResultSmallWin, Weight: 0.4, Prize: decimal.NewFromInt(1)},
	})
	assert.Error(t, err, "weights summing below 1 must be rejected")

	_, err = NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 1.2},
	})
	assert.Error(t, err, "weights summing above 1 must be rejected")

	_, err = NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 0},
		{Result: ResultSmallWin, Weight: 1, Prize: decimal.NewFromInt(1)},
	})
	assert.Error(t, err, "zero weight must be rejected")

	_, err = NewOutcomeTable([]OutcomeEntry{
		{Result: ResultSmallWin, Weight: 1, Prize: decimal.NewFromInt(-1)},
	})
	assert.Error(t, err, "negative prize must be rejected")

	table, err := NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 0.7},
		{Result: ResultJackpot, Weight: 0.3},
	})
	require.NoError(t, err)
	assert.Len(t, table.Entries(), 2)
}

func TestDefaultOutcomeTableIsValid(t *testing.T) {
	table := DefaultOutcomeTable()
	require.NotNil(t, table)

	sum := 0.0
	for _, e := range table.Entries() {
		sum += e.Weight
	}
	assert.InDelta(t, 1.0, sum, weightEpsilon)
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	table := DefaultOutcomeTable()

	first := make([]string, 0, 100)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		first = append(first, table.Draw(rng).Result)
	}

	second := make([]string, 0, 100)
	rng = rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		second = append(second, table.Draw(rng).Result)
	}

	assert.Equal(t, first, second)
}

func TestDrawOnlyReturnsTableEntries(t *testing.T) {
	table := DefaultOutcomeTable()
	valid := map[string]bool{}
	for _, e := range table.Entries() {
		valid[e.Result] = true
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		result := table.Draw(rng).Result
		assert.True(t, valid[result], "unexpected result %s", result)
	}
}

func TestDrawSingleEntryTable(t *testing.T) {
	table, err := NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 1},
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		assert.Equal(t, ResultLose, table.Draw(rng).Result)
	}
}
