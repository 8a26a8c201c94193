// Package service orchestrates statement extraction: text acquisition, the
// provider cascade, and assembly of the extraction report handed back to the
// caller.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/expense-exterminator/backend/internal/domain/extraction/acquirer"
	"github.com/expense-exterminator/backend/internal/domain/extraction/cascade"
	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	"github.com/expense-exterminator/backend/internal/domain/extraction/normalizer"
	"github.com/expense-exterminator/backend/internal/domain/extraction/spreadsheet"
)

// Report packages the normalized records with extraction metadata. It is
// created once per extraction call and owned by the caller afterwards;
// nothing here is persisted.
type Report struct {
	Provider          string                    `json:"provider"`
	Records           []normalizer.Record       `json:"transactions"`
	AcquisitionMethod acquirer.Method           `json:"processing_method"`
	StrategyUsed      string                    `json:"strategy_used"`
	RecordCount       int                       `json:"total_transactions"`
	Attempts          []cascade.StrategyAttempt `json:"attempts,omitempty"`
}

// TextAcquirer obtains text from a statement document.
type TextAcquirer interface {
	Acquire(ctx context.Context, path string) (acquirer.Text, error)
}

// Service runs statement extractions. It holds no per-call state: concurrent
// extractions are independent and share only the read-only registry.
type Service struct {
	registry *grammar.Registry
	acquirer TextAcquirer
	logger   *slog.Logger
}

// NewService creates an extraction service.
func NewService(registry *grammar.Registry, acq TextAcquirer, logger *slog.Logger) *Service {
	return &Service{registry: registry, acquirer: acq, logger: logger}
}

// ExtractFile extracts transactions from the document at path for the given
// provider. The provider is validated before any document work so an unknown
// id fails fast without touching the file.
func (s *Service) ExtractFile(ctx context.Context, path, provider string) (*Report, error) {
	g, err := s.registry.Lookup(provider)
	if err != nil {
		return nil, fmt.Errorf("lookup provider %q: %w", provider, err)
	}

	text, err := s.acquirer.Acquire(ctx, path)
	if err != nil {
		return nil, err
	}

	report, err := s.parse(ctx, text, g)
	if err != nil {
		return nil, err
	}

	s.logger.Info("statement extracted",
		slog.String("provider", provider),
		slog.String("method", string(text.Method)),
		slog.String("strategy", report.StrategyUsed),
		slog.Int("records", report.RecordCount),
		slog.Int("pages", text.Pages),
	)
	return report, nil
}

// ExtractText runs the cascade directly on caller-supplied text. The report
// is tagged native since no recognition took place.
func (s *Service) ExtractText(ctx context.Context, text, provider string) (*Report, error) {
	g, err := s.registry.Lookup(provider)
	if err != nil {
		return nil, fmt.Errorf("lookup provider %q: %w", provider, err)
	}
	return s.parse(ctx, acquirer.Text{Content: text, Method: acquirer.MethodNative}, g)
}

// ExtractSpreadsheet ingests a tabular statement (CSV or XLSX, chosen by the
// filename extension). Tabular input bypasses the cascade: columns already
// carry the fields the strategies would otherwise have to find.
func (s *Service) ExtractSpreadsheet(_ context.Context, r io.Reader, filename string) (*Report, error) {
	var (
		records []normalizer.Record
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		records, err = spreadsheet.ParseCSV(r)
	case ".xlsx":
		records, err = spreadsheet.ParseExcel(r)
	default:
		return nil, fmt.Errorf("%w: unsupported spreadsheet extension %q", grammar.ErrUnsupportedProvider, ext)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		Provider:          "spreadsheet",
		Records:           records,
		AcquisitionMethod: acquirer.MethodTabular,
		StrategyUsed:      "spreadsheet",
		RecordCount:       len(records),
	}
	extractionsTotal.WithLabelValues(report.Provider, string(report.AcquisitionMethod), report.StrategyUsed).Inc()
	recordsExtracted.WithLabelValues(report.Provider).Add(float64(report.RecordCount))

	s.logger.Info("spreadsheet extracted",
		slog.String("file", filepath.Base(filename)),
		slog.Int("records", report.RecordCount),
	)
	return report, nil
}

// Providers lists the supported provider ids.
func (s *Service) Providers() []string {
	return s.registry.Providers()
}

func (s *Service) parse(ctx context.Context, text acquirer.Text, g grammar.Grammar) (*Report, error) {
	result, err := cascade.Parse(ctx, text.Content, g)
	if err != nil {
		return nil, err
	}
	return buildReport(g.Provider, text.Method, result), nil
}

// buildReport is pure assembly: records plus metadata, no failure modes.
func buildReport(provider string, method acquirer.Method, result cascade.Result) *Report {
	report := &Report{
		Provider:          provider,
		Records:           result.Records,
		AcquisitionMethod: method,
		StrategyUsed:      result.StrategyUsed,
		RecordCount:       len(result.Records),
		Attempts:          result.Attempts,
	}
	extractionsTotal.WithLabelValues(provider, string(method), result.StrategyUsed).Inc()
	recordsExtracted.WithLabelValues(provider).Add(float64(report.RecordCount))
	return report
}
