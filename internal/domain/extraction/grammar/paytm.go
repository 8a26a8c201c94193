package grammar

import (
	"regexp"
	"strings"
)

// Paytm statements are receipt-style: a transaction is spread across several
// lines (date, time, "Paid to X", UPI boilerplate, bank, signed amount). The
// primary strategy is a forward-only line scan; the fallback is a single
// pattern allowed to span the boilerplate between merchant and amount.
const paytmLookaheadLines = 10

var (
	paytmDateLineRe = regexp.MustCompile(`^(\d{1,2}\s+[A-Za-z]{3})\b`)
	paytmTimeRe     = regexp.MustCompile(`(\d{1,2}:\d{2}\s+[AP]M)`)
	paytmMerchantRe = regexp.MustCompile(`(Paid to|Received from)\s+(.+)`)
	paytmAmountRe   = regexp.MustCompile(`Rs\.\s*([\d,]+(?:\.\d{1,2})?)`)

	paytmWideRe = regexp.MustCompile(
		`(?s)(\d{1,2}\s+[A-Za-z]{3})\s*(\d{1,2}:\d{2}\s+[AP]M)?\s*.*?(Paid to|Received from)\s+([^\n]+?)\n.*?(-?)\s*Rs\.\s*([\d,]+(?:\.\d{1,2})?)`,
	)
)

func paytmGrammar() Grammar {
	return Grammar{
		Provider:       "paytm",
		Strategies:     []Strategy{paytmLineScan{}, paytmWideWindow{}},
		CurrencyMarker: "Rs.",
		DateShape:      regexp.MustCompile(`\d{1,2}\s+[A-Za-z]{3}`),
		CleanupMarkers: []string{"UPI ID:", "UPI Ref No:", "Note:", "Tag:"},
	}
}

// paytmLineScan walks the statement line by line. A line starting with a date
// token opens a transaction block; the scan then looks forward (bounded) for
// the merchant line and forward (until the next date line) for the first
// amount bearing the currency marker. It never looks backward.
type paytmLineScan struct{}

func (paytmLineScan) Name() string { return "line_scan" }

func (paytmLineScan) Extract(text string) []Candidate {
	lines := nonEmptyLines(text)

	var candidates []Candidate
	for i := 0; i < len(lines); i++ {
		dateMatch := paytmDateLineRe.FindStringSubmatch(lines[i])
		if dateMatch == nil {
			continue
		}

		c := Candidate{DateRaw: dateMatch[1], Direction: DirectionUnknown}

		// Time on the date line or the one right after it.
		if tm := paytmTimeRe.FindStringSubmatch(lines[i]); tm != nil {
			c.TimeRaw = tm[1]
		} else if i+1 < len(lines) {
			if tm := paytmTimeRe.FindStringSubmatch(lines[i+1]); tm != nil {
				c.TimeRaw = tm[1]
				i++
			}
		}

		// Merchant + direction within the lookahead window.
		limit := i + 1 + paytmLookaheadLines
		if limit > len(lines) {
			limit = len(lines)
		}
		for j := i + 1; j < limit; j++ {
			if m := paytmMerchantRe.FindStringSubmatch(lines[j]); m != nil {
				c.Merchant = m[2]
				if m[1] == "Received from" {
					c.Direction = DirectionCredit
				} else {
					c.Direction = DirectionDebit
				}
				break
			}
		}

		// First marked amount before the next transaction block opens.
		for j := i + 1; j < len(lines); j++ {
			if j > i+1 && paytmDateLineRe.MatchString(lines[j]) {
				break
			}
			if am := paytmAmountRe.FindStringSubmatch(lines[j]); am != nil {
				c.AmountRaw = am[1]
				if strings.Contains(strings.SplitN(lines[j], "Rs.", 2)[0], "-") {
					c.Direction = DirectionDebit
				}
				break
			}
		}

		if c.Merchant == "" || c.AmountRaw == "" {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// paytmWideWindow is the fallback when the line scan yields too few blocks:
// one pattern spanning the UPI boilerplate between the merchant line and the
// signed amount. Only the first line of the merchant segment is kept; the
// cleanup markers trim the rest.
type paytmWideWindow struct{}

func (paytmWideWindow) Name() string { return "wide_window" }

func (paytmWideWindow) Extract(text string) []Candidate {
	matches := paytmWideRe.FindAllStringSubmatch(text, -1)
	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		direction := DirectionUnknown
		switch {
		case m[5] == "-":
			direction = DirectionDebit
		case m[3] == "Received from":
			direction = DirectionCredit
		case m[3] == "Paid to":
			direction = DirectionDebit
		}
		candidates = append(candidates, Candidate{
			DateRaw:   m[1],
			TimeRaw:   m[2],
			Merchant:  m[4],
			Direction: direction,
			AmountRaw: m[6],
		})
	}
	return candidates
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
