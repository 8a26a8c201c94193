package grammar

import (
	"regexp"
	"strings"
)

// The generic grammar is the best-effort fallback for statements from
// providers without a dedicated cascade. It recovers date+amount lines first
// and degrades to key-value scraping of receipt-style documents.
var (
	genericAmountRe = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR)\s*(-?[0-9,]+\.?\d*)`)

	genericSlashDateRe = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	genericWordDateRe  = regexp.MustCompile(`(?i)(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\s+\d{4})`)

	genericMerchantRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:paid to|received from|to|from|paid|received)\s+([^₹\d]+?)(?:₹|Rs|\d|$)`),
		regexp.MustCompile(`^([^₹\d]+?)(?:₹|Rs|\d)`),
	}

	genericKVAmountRe = regexp.MustCompile(`(?i)(?:amount|total|sum|value|price)[:=\s]+(?:₹|Rs\.?|INR)?\s*([0-9,]+\.?\d*)`)
	genericKVDateRe   = regexp.MustCompile(`(?i)(?:date|on)[:=\s]+(\d{1,2}\s+\w+\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
	genericKVStatusRe = regexp.MustCompile(`(?i)(?:status|state)[:=\s]+(success|failed|pending|completed)`)
	genericKVNameRe   = regexp.MustCompile(`(?i)(?:merchant|payee|name)[:=\s]+([^\n]+)`)
)

func genericGrammar() Grammar {
	return Grammar{
		Provider:       "generic",
		Strategies:     []Strategy{genericLineHeuristic{}, genericKeyValue{}},
		CurrencyMarker: "₹",
		DateShape:      regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		CleanupMarkers: []string{"UPI", "Ref", "Reference:"},
	}
}

// genericLineHeuristic emits a candidate for every line carrying at least a
// marked amount and one other transaction-like field.
type genericLineHeuristic struct{}

func (genericLineHeuristic) Name() string { return "line_heuristic" }

func (genericLineHeuristic) Extract(text string) []Candidate {
	var candidates []Candidate
	for _, line := range nonEmptyLines(text) {
		am := genericAmountRe.FindStringSubmatch(line)
		if am == nil {
			continue
		}

		c := Candidate{AmountRaw: am[1], Direction: genericDirection(line)}
		if d := genericSlashDateRe.FindStringSubmatch(line); d != nil {
			c.DateRaw = d[1]
		} else if d := genericWordDateRe.FindStringSubmatch(line); d != nil {
			c.DateRaw = d[1]
		}
		for _, re := range genericMerchantRes {
			if m := re.FindStringSubmatch(line); m != nil {
				merchant := strings.TrimSpace(m[1])
				if len(merchant) > 3 {
					c.Merchant = merchant
					break
				}
			}
		}

		if c.Merchant == "" && c.DateRaw == "" {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// genericKeyValue scrapes labelled fields from receipt-style documents that
// describe a single transaction.
type genericKeyValue struct{}

func (genericKeyValue) Name() string { return "key_value" }

func (genericKeyValue) Extract(text string) []Candidate {
	am := genericKVAmountRe.FindStringSubmatch(text)
	if am == nil {
		return nil
	}

	c := Candidate{AmountRaw: am[1], Direction: genericDirection(text)}
	if d := genericKVDateRe.FindStringSubmatch(text); d != nil {
		c.DateRaw = d[1]
	}
	if s := genericKVStatusRe.FindStringSubmatch(text); s != nil {
		c.Status = strings.ToUpper(s[1])
	}
	if n := genericKVNameRe.FindStringSubmatch(text); n != nil {
		c.Merchant = strings.TrimSpace(n[1])
	}
	return []Candidate{c}
}

// genericDirection infers flow from lexical cues when the provider's format
// carries no explicit DEBIT/CREDIT token.
func genericDirection(s string) Direction {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "received from") || strings.Contains(lower, "credit"):
		return DirectionCredit
	case strings.Contains(lower, "paid") || strings.Contains(lower, "debit"):
		return DirectionDebit
	}
	return DirectionUnknown
}
