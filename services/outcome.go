package services

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

const (
	ResultLose      = "LOSE"
	ResultSmallWin  = "SMALL_WIN"
	ResultMediumWin = "MEDIUM_WIN"
	ResultBigWin    = "BIG_WIN"
	ResultJackpot   = "JACKPOT"
	ResultFreeSpin  = "FREE_SPIN"
)

const weightEpsilon = 1e-9

// OutcomeEntry is one row of the weighted outcome table. Prize is the fixed
// payout for normal wins; JACKPOT derives its prize from the pool and
// FREE_SPIN pays a ticket instead of money, so both leave Prize at zero.
type OutcomeEntry struct {
	Result string
	Weight float64
	Prize  decimal.Decimal
}

type OutcomeTable struct {
	entries    []OutcomeEntry
	cumulative []float64
}

// NewOutcomeTable validates the entries: every weight must be positive and
// the weights must sum to 1 within epsilon.
func NewOutcomeTable(entries []OutcomeEntry) (*OutcomeTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("outcome table is empty")
	}

	sum := 0.0
	cumulative := make([]float64, len(entries))
	for i, e := range entries {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("outcome %s has non-positive weight %f", e.Result, e.Weight)
		}
		if e.Prize.IsNegative() {
			return nil, fmt.Errorf("outcome %s has negative prize", e.Result)
		}
		sum += e.Weight
		cumulative[i] = sum
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return nil, fmt.Errorf("outcome weights sum to %f, want 1", sum)
	}

	return &OutcomeTable{entries: entries, cumulative: cumulative}, nil
}

// Draw samples one entry by cumulative weight. Deterministic for a seeded
// rng, which is what the settlement tests rely on.
func (t *OutcomeTable) Draw(rng *rand.Rand) OutcomeEntry {
	r := rng.Float64()
	for i, c := range t.cumulative {
		if r < c {
			return t.entries[i]
		}
	}
	// float dust: r landed on or past the last cumulative bound
	return t.entries[len(t.entries)-1]
}

func (t *OutcomeTable) Entries() []OutcomeEntry {
	out := make([]OutcomeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// DefaultOutcomeTable is the shipped odds configuration. The weights are a
// product decision, not an invariant; deployments override them via
// NewOutcomeTable.
func DefaultOutcomeTable() *OutcomeTable {
	table, err := NewOutcomeTable([]OutcomeEntry{
		{Result: ResultLose, Weight: 0.50},
		{Result: ResultSmallWin, Weight: 0.25, Prize: decimal.NewFromInt(1)},
		{Result: ResultMediumWin, Weight: 0.12, Prize: decimal.NewFromInt(5)},
		{Result: ResultBigWin, Weight: 0.05, Prize: decimal.NewFromInt(20)},
		{Result: ResultFreeSpin, Weight: 0.06},
		{Result: ResultJackpot, Weight: 0.02},
	})
	if err != nil {
		panic(err)
	}
	return table
}
