package grammar

import (
	"regexp"
	"strings"
)

// SuperMoney statements are tabular ledgers where one line encodes the whole
// transaction: NAME BANK ACCOUNT SIGNED-AMOUNT DATE STATUS, e.g.
//
//	SIMHADRI SUPER MARKET SBI 7317 -10.00 25 January 2025 SUCCESS
//
// The strict strategy matches this grammar exactly; the reconstructed strategy
// rebuilds the fields around the amount token when spacing or OCR noise breaks
// the strict form.
var (
	superMoneyBanks    = []string{"SBI", "HDFC", "ICICI", "AXIS", "PNB", "BOI", "CANARA", "UNION"}
	superMoneyStatuses = []string{"SUCCESS", "FAILED", "PENDING"}

	superMoneyLineRe = regexp.MustCompile(
		`(?i)^(.+?)\s+(SBI|HDFC|ICICI|AXIS|PNB|BOI|CANARA|UNION)\s+(\d+)\s+([-+]?\d+\.\d+)\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})\s+(SUCCESS|FAILED|PENDING)$`,
	)
	superMoneyAmountTokenRe = regexp.MustCompile(`^[-+]?\d+\.\d+$`)
	superMoneyRangeRe       = regexp.MustCompile(`(?i)\d{4}\s+to\s+\d`)
)

// Header and boilerplate lines are filtered before any parse attempt.
var superMoneyDenylist = []string{
	"transaction history",
	"powered by",
	"yes bank",
	"upi",
	"name bank amount date status",
}

const superMoneyDefaultStatus = "SUCCESS"

func superMoneyGrammar() Grammar {
	return Grammar{
		Provider:       "supermoney",
		Strategies:     []Strategy{superMoneyStructured{}},
		CurrencyMarker: "",
		DateShape:      regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`),
		CleanupMarkers: nil,
	}
}

type superMoneyStructured struct{}

func (superMoneyStructured) Name() string { return "structured_line" }

func (superMoneyStructured) Extract(text string) []Candidate {
	var candidates []Candidate
	for _, line := range nonEmptyLines(text) {
		if isSuperMoneyBoilerplate(line) {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")

		if c, ok := parseSuperMoneyStrict(line); ok {
			candidates = append(candidates, c)
			continue
		}
		if c, ok := parseSuperMoneyTokens(line); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

func isSuperMoneyBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range superMoneyDenylist {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return superMoneyRangeRe.MatchString(line)
}

func parseSuperMoneyStrict(line string) (Candidate, bool) {
	m := superMoneyLineRe.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	return Candidate{
		Merchant:    m[1],
		BankAccount: m[2] + " " + m[3],
		Direction:   DirectionUnknown,
		AmountRaw:   m[4],
		DateRaw:     m[5],
		Status:      strings.ToUpper(m[6]),
	}, true
}

// parseSuperMoneyTokens reconstructs the five fields from raw tokens: the
// amount anchors the line, a bank keyword before it splits name from bank,
// everything after the amount is the date, minus a trailing status keyword.
func parseSuperMoneyTokens(line string) (Candidate, bool) {
	tokens := strings.Fields(line)

	amountIdx := -1
	for i, tok := range tokens {
		if superMoneyAmountTokenRe.MatchString(tok) {
			amountIdx = i
			break
		}
	}
	if amountIdx < 0 {
		return Candidate{}, false
	}

	bankIdx := -1
	for i := 0; i < amountIdx; i++ {
		if isSuperMoneyBankToken(tokens[i]) {
			bankIdx = i
			break
		}
	}
	if bankIdx <= 0 {
		return Candidate{}, false
	}

	status := superMoneyDefaultStatus
	dateEnd := len(tokens)
	if last := strings.ToUpper(tokens[len(tokens)-1]); isSuperMoneyStatus(last) {
		status = last
		dateEnd--
	}

	name := strings.Join(tokens[:bankIdx], " ")
	bank := strings.Join(tokens[bankIdx:amountIdx], " ")
	date := strings.Join(tokens[amountIdx+1:dateEnd], " ")
	if name == "" || bank == "" || date == "" {
		return Candidate{}, false
	}

	return Candidate{
		Merchant:    name,
		BankAccount: bank,
		Direction:   DirectionUnknown,
		AmountRaw:   tokens[amountIdx],
		DateRaw:     date,
		Status:      status,
	}, true
}

func isSuperMoneyBankToken(tok string) bool {
	upper := strings.ToUpper(tok)
	for _, bank := range superMoneyBanks {
		if upper == bank {
			return true
		}
	}
	return false
}

func isSuperMoneyStatus(tok string) bool {
	for _, s := range superMoneyStatuses {
		if tok == s {
			return true
		}
	}
	return false
}
