// Package categorization assigns spending categories to merchant names.
// Keyword matching runs through an Aho-Corasick automaton so every pattern
// is checked in a single pass; a fuzzy matcher catches OCR-mangled names.
package categorization

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Pattern maps a merchant keyword to a category.
type Pattern struct {
	Keyword  string
	Category string
}

// Engine matches merchant names against a keyword set. Matching is
// case-insensitive; the longest matching keyword wins, so "amazon pay"
// beats "amazon".
type Engine struct {
	mu       sync.RWMutex
	matcher  *ahocorasick.Matcher
	patterns []Pattern
}

// NewEngine builds an engine over the given patterns.
func NewEngine(patterns []Pattern) *Engine {
	e := &Engine{}
	e.Build(patterns)
	return e
}

// Build replaces the pattern set and recomputes the automaton. Safe to call
// while Match is in use.
func (e *Engine) Build(patterns []Pattern) {
	normalized := make([]Pattern, 0, len(patterns))
	keywords := make([][]byte, 0, len(patterns))
	for _, p := range patterns {
		kw := strings.ToLower(strings.TrimSpace(p.Keyword))
		if kw == "" || p.Category == "" {
			continue
		}
		normalized = append(normalized, Pattern{Keyword: kw, Category: p.Category})
		keywords = append(keywords, []byte(kw))
	}

	var matcher *ahocorasick.Matcher
	if len(keywords) > 0 {
		matcher = ahocorasick.NewMatcher(keywords)
	}

	e.mu.Lock()
	e.matcher = matcher
	e.patterns = normalized
	e.mu.Unlock()
}

// Match returns the category for the merchant, or "" when no keyword hits.
func (e *Engine) Match(merchant string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return ""
	}

	hits := e.matcher.Match([]byte(strings.ToLower(merchant)))
	if len(hits) == 0 {
		return ""
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.patterns) {
			continue
		}
		if best == -1 || len(e.patterns[idx].Keyword) > len(e.patterns[best].Keyword) {
			best = idx
		}
	}
	if best == -1 {
		return ""
	}
	return e.patterns[best].Category
}
