// Package grammar holds the provider grammar registry: for each supported
// payment provider, an ordered cascade of parsing strategies plus the
// normalization rules (currency marker, date shape, merchant cleanup) that
// apply to its statements.
package grammar

import (
	"errors"
	"regexp"
	"sort"
)

// Direction classifies the money flow of a candidate.
type Direction string

const (
	DirectionDebit   Direction = "DEBIT"
	DirectionCredit  Direction = "CREDIT"
	DirectionUnknown Direction = "UNKNOWN"
)

// Candidate is a single unvalidated match produced by a strategy. Fields are
// raw display strings exactly as they appeared in the statement text; the
// normalizer decides whether they form a well-formed record.
type Candidate struct {
	DateRaw     string
	TimeRaw     string
	Merchant    string
	Direction   Direction
	AmountRaw   string
	BankAccount string
	Status      string
}

// Strategy is one self-contained pattern-matching pass over the full acquired
// text. It yields zero or more candidates in document order and never fails.
type Strategy interface {
	Name() string
	Extract(text string) []Candidate
}

// Grammar describes how one provider's statements are parsed.
type Grammar struct {
	Provider string

	// Strategies in cascade priority order. The cascade accepts the first
	// strategy whose normalized yield meets the acceptance threshold.
	Strategies []Strategy

	// CurrencyMarker is the token that precedes amounts in this provider's
	// statements (e.g. "₹", "Rs.").
	CurrencyMarker string

	// DateShape matches the provider's date tokens.
	DateShape *regexp.Regexp

	// CleanupMarkers are trailing-metadata markers; merchant text is cut at
	// the first occurrence of any of them.
	CleanupMarkers []string
}

// ErrUnsupportedProvider is returned when a provider id has no registered
// grammar.
var ErrUnsupportedProvider = errors.New("unsupported statement provider")

// Registry maps provider ids to grammars. It is built once at startup and is
// read-only afterwards, so it is safe to share across concurrent extractions.
type Registry struct {
	grammars map[string]Grammar
}

// NewRegistry builds the registry with all supported providers.
func NewRegistry() *Registry {
	r := &Registry{grammars: make(map[string]Grammar)}
	for _, g := range []Grammar{
		phonePeGrammar(),
		paytmGrammar(),
		superMoneyGrammar(),
		genericGrammar(),
	} {
		r.grammars[g.Provider] = g
	}
	return r
}

// Lookup returns the grammar for a provider id.
func (r *Registry) Lookup(provider string) (Grammar, error) {
	g, ok := r.grammars[provider]
	if !ok {
		return Grammar{}, ErrUnsupportedProvider
	}
	return g, nil
}

// Providers lists the registered provider ids in stable order.
func (r *Registry) Providers() []string {
	ids := make([]string, 0, len(r.grammars))
	for id := range r.grammars {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
