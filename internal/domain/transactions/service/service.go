// Package service coordinates transaction business logic: CRUD, statement
// report import, and CSV export.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-exterminator/backend/internal/domain/categorization"
	extraction "github.com/expense-exterminator/backend/internal/domain/extraction/service"
	"github.com/expense-exterminator/backend/internal/domain/transactions/repository"
	"github.com/expense-exterminator/backend/pkg/money"
)

var (
	// ErrInvalidDirection is returned when the type is not DEBIT or CREDIT.
	ErrInvalidDirection = errors.New("type must be DEBIT or CREDIT")
	// ErrInvalidAmount is returned when the amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrEmptyMerchant is returned when the merchant name is blank.
	ErrEmptyMerchant = errors.New("merchant is required")
)

// CreateParams contains the data for a manually entered transaction.
type CreateParams struct {
	Date      string
	Time      string
	Merchant  string
	Direction string
	Amount    decimal.Decimal
	Currency  string
	Category  string
}

// ImportOptions control how an extraction report is turned into rows.
type ImportOptions struct {
	Currency       string
	AutoCategorize bool
}

// Service coordinates transaction business logic.
type Service struct {
	repo        repository.TransactionRepository
	categorizer *categorization.Service
	logger      *slog.Logger
}

// NewService constructs a new transaction service.
func NewService(repo repository.TransactionRepository, categorizer *categorization.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, categorizer: categorizer, logger: logger}
}

// List returns the user's transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*repository.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create validates and stores a manually entered transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*repository.Transaction, error) {
	direction := strings.ToUpper(strings.TrimSpace(params.Direction))
	if direction != "DEBIT" && direction != "CREDIT" {
		return nil, ErrInvalidDirection
	}
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	merchant := strings.TrimSpace(params.Merchant)
	if merchant == "" {
		return nil, ErrEmptyMerchant
	}

	currency := params.Currency
	if currency == "" {
		currency = money.INR
	}

	tx := &repository.Transaction{
		UserID:      userID,
		TxnDate:     strings.TrimSpace(params.Date),
		TxnTime:     strings.TrimSpace(params.Time),
		Merchant:    merchant,
		Direction:   direction,
		AmountCents: money.NewFromDecimal(params.Amount, currency).Amount(),
		Currency:    currency,
		Category:    params.Category,
	}
	if tx.Category == "" && s.categorizer != nil {
		tx.Category = s.categorizer.Categorize(merchant)
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete removes a transaction owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// ImportReport stores all records from an extraction report and returns the
// number inserted.
func (s *Service) ImportReport(ctx context.Context, userID uuid.UUID, report *extraction.Report, opts ImportOptions) (int, error) {
	if report == nil || len(report.Records) == 0 {
		return 0, nil
	}

	currency := opts.Currency
	if currency == "" {
		currency = money.INR
	}

	txs := make([]*repository.Transaction, 0, len(report.Records))
	for _, record := range report.Records {
		tx := &repository.Transaction{
			UserID:      userID,
			TxnDate:     record.Date,
			TxnTime:     record.Time,
			Merchant:    record.Merchant,
			Direction:   string(record.Direction),
			AmountCents: money.NewFromDecimal(record.Amount, currency).Amount(),
			Currency:    currency,
			Bank:        record.BankAccount,
			Status:      record.Status,
			Provider:    report.Provider,
		}
		if opts.AutoCategorize && s.categorizer != nil {
			tx.Category = s.categorizer.Categorize(record.Merchant)
		}
		txs = append(txs, tx)
	}

	inserted, err := s.repo.CreateBatch(ctx, txs)
	if err != nil {
		return 0, err
	}

	s.logger.Info("statement report imported",
		slog.String("user_id", userID.String()),
		slog.String("provider", report.Provider),
		slog.Int("inserted", inserted),
	)
	return inserted, nil
}

// exportRow is the CSV shape for transaction exports.
type exportRow struct {
	Date     string `csv:"date"`
	Time     string `csv:"time"`
	Merchant string `csv:"merchant"`
	Type     string `csv:"type"`
	Amount   string `csv:"amount"`
	Currency string `csv:"currency"`
	Bank     string `csv:"bank"`
	Status   string `csv:"status"`
	Category string `csv:"category"`
	Provider string `csv:"provider"`
}

// ExportCSV writes the user's transactions as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, exportRow{
			Date:     tx.TxnDate,
			Time:     tx.TxnTime,
			Merchant: tx.Merchant,
			Type:     tx.Direction,
			Amount:   money.New(tx.AmountCents, tx.Currency).ToDecimal().StringFixed(2),
			Currency: tx.Currency,
			Bank:     tx.Bank,
			Status:   tx.Status,
			Category: tx.Category,
			Provider: tx.Provider,
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}
