package cascade

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
)

// stubStrategy yields a fixed number of well-formed candidates plus a fixed
// number of malformed ones, regardless of the input text.
type stubStrategy struct {
	name      string
	good      int
	malformed int
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Extract(string) []grammar.Candidate {
	candidates := make([]grammar.Candidate, 0, s.good+s.malformed)
	for i := 0; i < s.good; i++ {
		candidates = append(candidates, grammar.Candidate{
			Merchant:  fmt.Sprintf("Merchant %d", i),
			Direction: grammar.DirectionDebit,
			AmountRaw: "100.00",
		})
	}
	for i := 0; i < s.malformed; i++ {
		candidates = append(candidates, grammar.Candidate{
			Merchant:  "Broken",
			Direction: grammar.DirectionUnknown,
			AmountRaw: "100.00",
		})
	}
	return candidates
}

func testGrammar(strategies ...grammar.Strategy) grammar.Grammar {
	return grammar.Grammar{Provider: "stub", Strategies: strategies}
}

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("first strategy at threshold is accepted without trying the rest", func(t *testing.T) {
		g := testGrammar(
			stubStrategy{name: "dense", good: 3},
			stubStrategy{name: "fallback", good: 10},
		)

		result, err := Parse(ctx, "irrelevant", g)
		require.NoError(t, err)
		assert.Equal(t, "dense", result.StrategyUsed)
		assert.Len(t, result.Records, 3)
		assert.Len(t, result.Attempts, 1, "acceptance stops the cascade")
	})

	t.Run("below-threshold yield falls through to the next strategy", func(t *testing.T) {
		g := testGrammar(
			stubStrategy{name: "dense", good: 2},
			stubStrategy{name: "fallback", good: 4},
		)

		result, err := Parse(ctx, "irrelevant", g)
		require.NoError(t, err)
		assert.Equal(t, "fallback", result.StrategyUsed)
		assert.Len(t, result.Records, 4)
		require.Len(t, result.Attempts, 2)
		assert.Equal(t, StrategyAttempt{Strategy: "dense", Candidates: 2, Records: 2}, result.Attempts[0])
		assert.Equal(t, StrategyAttempt{Strategy: "fallback", Candidates: 4, Records: 4}, result.Attempts[1])
	})

	t.Run("exhaustion keeps the best partial yield", func(t *testing.T) {
		g := testGrammar(
			stubStrategy{name: "dense", good: 2},
			stubStrategy{name: "fallback", good: 1},
		)

		result, err := Parse(ctx, "irrelevant", g)
		require.NoError(t, err)
		assert.Equal(t, "dense", result.StrategyUsed)
		assert.Len(t, result.Records, 2)
		assert.Len(t, result.Attempts, 2)
	})

	t.Run("empty document reports the last strategy with zero records", func(t *testing.T) {
		g := testGrammar(
			stubStrategy{name: "dense"},
			stubStrategy{name: "fallback"},
		)

		result, err := Parse(ctx, "", g)
		require.NoError(t, err)
		assert.Equal(t, "fallback", result.StrategyUsed)
		assert.Empty(t, result.Records)
	})

	t.Run("malformed candidates are dropped, not escalated", func(t *testing.T) {
		g := testGrammar(stubStrategy{name: "dense", good: 4, malformed: 2})

		result, err := Parse(ctx, "irrelevant", g)
		require.NoError(t, err)
		assert.Equal(t, "dense", result.StrategyUsed)
		assert.Len(t, result.Records, 4)
		require.Len(t, result.Attempts, 1)
		assert.Equal(t, 6, result.Attempts[0].Candidates)
		assert.Equal(t, 4, result.Attempts[0].Records)
	})

	t.Run("malformed candidates count against the threshold", func(t *testing.T) {
		g := testGrammar(
			stubStrategy{name: "dense", good: 2, malformed: 5},
			stubStrategy{name: "fallback", good: 3},
		)

		result, err := Parse(ctx, "irrelevant", g)
		require.NoError(t, err)
		assert.Equal(t, "fallback", result.StrategyUsed)
		assert.Len(t, result.Records, 3)
	})

	t.Run("cancelled context aborts between strategies", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		g := testGrammar(stubStrategy{name: "dense", good: 10})

		_, err := Parse(cancelled, "irrelevant", g)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
