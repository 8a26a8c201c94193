// Package spreadsheet ingests tabular statements (CSV and Excel exports)
// into the same canonical records the document cascade produces. It uses
// gocsv for struct-based unmarshaling and excelize for workbook reads.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	"github.com/expense-exterminator/backend/internal/domain/extraction/normalizer"
)

// StatementRow is a raw spreadsheet row. The tags cover the column names seen
// across provider exports; gocsv matches them against the header row.
type StatementRow struct {
	Date        string `csv:"date"`
	TxnDate     string `csv:"transaction date"`
	Time        string `csv:"time"`
	Merchant    string `csv:"merchant"`
	Name        string `csv:"name"`
	Payee       string `csv:"payee"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Value       string `csv:"value"`
	Type        string `csv:"type"`
	Direction   string `csv:"direction"`
	Bank        string `csv:"bank"`
	Account     string `csv:"account"`
	Status      string `csv:"status"`
}

// tabularRules drives normalization of spreadsheet rows: amounts may carry
// the rupee marker, and there is no trailing metadata to strip.
var tabularRules = grammar.Grammar{
	Provider:       "spreadsheet",
	CurrencyMarker: "₹",
}

func init() {
	// Provider exports are sloppy about quoting and padding.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})
}

// ParseCSV reads all statement rows from a CSV stream. Rows that do not
// normalize into well-formed records are skipped, mirroring candidate-level
// rejection in the document cascade.
func ParseCSV(r io.Reader) ([]normalizer.Record, error) {
	var rows []StatementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	records := make([]normalizer.Record, 0, len(rows))
	for _, row := range rows {
		if record, err := normalizeRow(row); err == nil {
			records = append(records, record)
		}
	}
	return records, nil
}

func normalizeRow(row StatementRow) (normalizer.Record, error) {
	c := grammar.Candidate{
		DateRaw:     coalesce(row.Date, row.TxnDate),
		TimeRaw:     row.Time,
		Merchant:    coalesce(row.Merchant, row.Name, row.Payee, row.Description),
		Direction:   rowDirection(coalesce(row.Type, row.Direction)),
		AmountRaw:   coalesce(row.Amount, row.Value),
		BankAccount: strings.TrimSpace(strings.Join(strings.Fields(row.Bank+" "+row.Account), " ")),
		Status:      strings.ToUpper(strings.TrimSpace(row.Status)),
	}
	return normalizer.Normalize(c, tabularRules)
}

func rowDirection(raw string) grammar.Direction {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBIT", "EXPENSE", "PAID":
		return grammar.DirectionDebit
	case "CREDIT", "INCOME", "RECEIVED":
		return grammar.DirectionCredit
	}
	return grammar.DirectionUnknown
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
