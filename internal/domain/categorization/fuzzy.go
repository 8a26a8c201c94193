package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxFuzzyDistance bounds the Levenshtein distance accepted for a fuzzy
// keyword hit. OCR typically garbles one or two characters.
const maxFuzzyDistance = 2

// fuzzyMatch scans the merchant's words for near-misses of the keyword set.
// It only considers keywords at least four characters long; shorter ones
// produce too many false positives.
func (e *Engine) fuzzyMatch(merchant string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	words := strings.Fields(strings.ToLower(merchant))
	bestDistance := maxFuzzyDistance + 1
	bestCategory := ""

	for _, p := range e.patterns {
		if len(p.Keyword) < 4 {
			continue
		}
		for _, word := range words {
			d := fuzzy.LevenshteinDistance(word, p.Keyword)
			if d >= 0 && d < bestDistance {
				bestDistance = d
				bestCategory = p.Category
			}
		}
	}
	return bestCategory
}
