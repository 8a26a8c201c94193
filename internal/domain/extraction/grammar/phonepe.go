package grammar

import "regexp"

// PhonePe statements are densely tabular: one sweep of the whole text with a
// fixed cross-line pattern recovers every transaction.
//
//	Feb 13, 2025  Paid to Swiggy  DEBIT  ₹250
//
// The merchant segment may span lines; the normalizer collapses the runs.
var phonePeTxnRe = regexp.MustCompile(
	`([A-Za-z]{3}\s+\d{1,2},\s+\d{4})\s+(Paid to|Received from)\s+([\s\S]*?)\s+(DEBIT|CREDIT)\s+₹([\d,]+(?:\.\d{1,2})?)`,
)

func phonePeGrammar() Grammar {
	return Grammar{
		Provider:       "phonepe",
		Strategies:     []Strategy{phonePeSinglePass{}},
		CurrencyMarker: "₹",
		DateShape:      regexp.MustCompile(`[A-Za-z]{3}\s+\d{1,2},\s+\d{4}`),
		CleanupMarkers: []string{"UPI ID:", "UPI Ref No:", "Note:", "Tag:"},
	}
}

type phonePeSinglePass struct{}

func (phonePeSinglePass) Name() string { return "single_pass" }

func (phonePeSinglePass) Extract(text string) []Candidate {
	matches := phonePeTxnRe.FindAllStringSubmatch(text, -1)
	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		direction := DirectionDebit
		if m[4] == "CREDIT" {
			direction = DirectionCredit
		}
		candidates = append(candidates, Candidate{
			DateRaw:   m[1],
			Merchant:  m[3],
			Direction: direction,
			AmountRaw: m[5],
		})
	}
	return candidates
}
