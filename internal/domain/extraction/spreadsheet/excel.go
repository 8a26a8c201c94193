package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/expense-exterminator/backend/internal/domain/extraction/normalizer"
)

// ParseExcel reads statement rows from the first sheet of an XLSX workbook.
// The header row maps columns to fields using the same names ParseCSV accepts.
func ParseExcel(r io.Reader) ([]normalizer.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	setters := mapHeader(rows[0])
	records := make([]normalizer.Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		var row StatementRow
		for i, set := range setters {
			if set == nil || i >= len(cells) {
				continue
			}
			set(&row, cells[i])
		}
		if record, err := normalizeRow(row); err == nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// mapHeader resolves each header cell to a StatementRow field setter.
// Unrecognized columns are ignored.
func mapHeader(header []string) []func(*StatementRow, string) {
	setters := make([]func(*StatementRow, string), len(header))
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "transaction date", "txn date":
			setters[i] = func(r *StatementRow, v string) { r.Date = v }
		case "time":
			setters[i] = func(r *StatementRow, v string) { r.Time = v }
		case "merchant", "name", "payee", "description", "details":
			setters[i] = func(r *StatementRow, v string) { r.Merchant = v }
		case "amount", "value":
			setters[i] = func(r *StatementRow, v string) { r.Amount = v }
		case "type", "direction":
			setters[i] = func(r *StatementRow, v string) { r.Type = v }
		case "bank", "account":
			setters[i] = func(r *StatementRow, v string) { r.Bank = v }
		case "status":
			setters[i] = func(r *StatementRow, v string) { r.Status = v }
		}
	}
	return setters
}
