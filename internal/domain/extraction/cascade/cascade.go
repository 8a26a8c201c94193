// Package cascade runs a provider's parsing strategies in priority order and
// selects the first yield that meets the acceptance threshold, falling back
// to the best partial yield when none does.
package cascade

import (
	"context"

	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	"github.com/expense-exterminator/backend/internal/domain/extraction/normalizer"
)

// AcceptanceThreshold is the minimum normalized record count for a strategy's
// yield to be accepted outright. Statements worth processing carry at least
// this many transactions.
const AcceptanceThreshold = 3

// StrategyAttempt records one strategy pass for diagnostics. The parser stays
// inert: the caller decides whether and how to surface the attempts.
type StrategyAttempt struct {
	Strategy   string `json:"strategy"`
	Candidates int    `json:"candidates"`
	Records    int    `json:"records"`
}

// Result is the outcome of one cascade over one text.
type Result struct {
	Records      []normalizer.Record
	StrategyUsed string
	Attempts     []StrategyAttempt
}

// Parse runs the grammar's strategies against the full text. Each strategy's
// candidates are normalized; malformed candidates are dropped, never
// escalated. Exhaustion is not an error: the highest-yield attempt wins, with
// later attempts breaking ties so a fully empty document reports the
// lowest-priority strategy. The context is only checked between strategies,
// never mid-strategy.
func Parse(ctx context.Context, text string, g grammar.Grammar) (Result, error) {
	var best Result
	for _, strategy := range g.Strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		candidates := strategy.Extract(text)
		records := make([]normalizer.Record, 0, len(candidates))
		for _, c := range candidates {
			record, err := normalizer.Normalize(c, g)
			if err != nil {
				continue
			}
			records = append(records, record)
		}

		best.Attempts = append(best.Attempts, StrategyAttempt{
			Strategy:   strategy.Name(),
			Candidates: len(candidates),
			Records:    len(records),
		})

		if len(records) >= AcceptanceThreshold {
			best.Records = records
			best.StrategyUsed = strategy.Name()
			return best, nil
		}
		if len(records) >= len(best.Records) {
			best.Records = records
			best.StrategyUsed = strategy.Name()
		}
	}
	return best, nil
}
