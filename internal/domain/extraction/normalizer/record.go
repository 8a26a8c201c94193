// Package normalizer converts raw strategy candidates into canonical
// transaction records. Candidates that cannot be made well-formed (bad
// amount, unresolved direction, empty merchant) are rejected individually;
// rejection never fails the surrounding extraction.
package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
)

// Record is a validated transaction. Amount is always positive and direction
// is always DEBIT or CREDIT. Date, time, status and bank account are
// provider-local display strings passed through verbatim.
type Record struct {
	Date        string            `json:"date"`
	Time        string            `json:"time,omitempty"`
	Merchant    string            `json:"merchant"`
	Direction   grammar.Direction `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	BankAccount string            `json:"bank,omitempty"`
	Status      string            `json:"status,omitempty"`
	Provider    string            `json:"provider"`
}

var (
	ErrBadAmount     = errors.New("amount is not a positive decimal")
	ErrNoDirection   = errors.New("direction could not be resolved")
	ErrEmptyMerchant = errors.New("merchant is empty after cleanup")
)

// Normalize validates a candidate against the provider's grammar rules and
// produces a canonical record, or an error describing the rejection.
func Normalize(c grammar.Candidate, g grammar.Grammar) (Record, error) {
	amount, signed, err := parseAmount(c.AmountRaw, g.CurrencyMarker)
	if err != nil {
		return Record{}, err
	}

	direction := c.Direction
	if direction == "" {
		direction = grammar.DirectionUnknown
	}
	if direction == grammar.DirectionUnknown {
		direction = signed
	}
	if direction == grammar.DirectionUnknown {
		return Record{}, ErrNoDirection
	}

	merchant := cleanMerchant(c.Merchant, g.CleanupMarkers)
	if merchant == "" {
		return Record{}, ErrEmptyMerchant
	}

	return Record{
		Date:        strings.TrimSpace(c.DateRaw),
		Time:        strings.TrimSpace(c.TimeRaw),
		Merchant:    merchant,
		Direction:   direction,
		Amount:      amount,
		BankAccount: strings.TrimSpace(c.BankAccount),
		Status:      strings.TrimSpace(c.Status),
		Provider:    g.Provider,
	}, nil
}

// parseAmount strips the currency marker and digit-group separators, then
// parses a fixed-point decimal. A leading minus implies DEBIT and a leading
// plus implies CREDIT; the returned amount is always absolute.
func parseAmount(raw, marker string) (decimal.Decimal, grammar.Direction, error) {
	s := strings.TrimSpace(raw)
	if marker != "" {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	signed := grammar.DirectionUnknown
	switch {
	case strings.HasPrefix(s, "-"):
		signed = grammar.DirectionDebit
		s = strings.TrimPrefix(s, "-")
	case strings.HasPrefix(s, "+"):
		signed = grammar.DirectionCredit
		s = strings.TrimPrefix(s, "+")
	}

	if s == "" {
		return decimal.Decimal{}, signed, fmt.Errorf("%w: empty token", ErrBadAmount)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, signed, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, signed, fmt.Errorf("%w: %q", ErrBadAmount, raw)
	}
	return amount, signed, nil
}

// cleanMerchant collapses whitespace runs and cuts the text at the first
// provider-declared metadata marker.
func cleanMerchant(raw string, markers []string) string {
	merchant := strings.Join(strings.Fields(raw), " ")
	for _, marker := range markers {
		if idx := indexFold(merchant, marker); idx >= 0 {
			merchant = merchant[:idx]
		}
	}
	return strings.TrimSpace(merchant)
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
