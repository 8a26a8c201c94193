package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-exterminator/backend/internal/domain/categorization"
	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	"github.com/expense-exterminator/backend/internal/domain/extraction/normalizer"
	extraction "github.com/expense-exterminator/backend/internal/domain/extraction/service"
	"github.com/expense-exterminator/backend/internal/domain/transactions/repository"
)

// mockRepo records calls and returns canned data.
type mockRepo struct {
	created []*repository.Transaction
	batched []*repository.Transaction
	listed  []*repository.Transaction
	err     error
}

func (m *mockRepo) Create(_ context.Context, tx *repository.Transaction) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, tx)
	return nil
}

func (m *mockRepo) CreateBatch(_ context.Context, txs []*repository.Transaction) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.batched = append(m.batched, txs...)
	return len(txs), nil
}

func (m *mockRepo) ListByUser(context.Context, uuid.UUID) ([]*repository.Transaction, error) {
	return m.listed, m.err
}

func (m *mockRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("valid transaction", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, categorization.NewService(), testLogger())

		tx, err := svc.Create(context.Background(), userID, CreateParams{
			Date:      "13/02/2025",
			Merchant:  "  Swiggy  ",
			Direction: "debit",
			Amount:    decimal.RequireFromString("250.50"),
		})
		require.NoError(t, err)
		require.Len(t, repo.created, 1)
		assert.Equal(t, userID, tx.UserID)
		assert.Equal(t, "Swiggy", tx.Merchant)
		assert.Equal(t, "DEBIT", tx.Direction, "direction is upper-cased")
		assert.Equal(t, int64(25050), tx.AmountCents)
		assert.Equal(t, "INR", tx.Currency, "default currency")
		assert.Equal(t, "Food & Dining", tx.Category, "auto-categorized when blank")
	})

	t.Run("explicit category wins over the categorizer", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, categorization.NewService(), testLogger())

		tx, err := svc.Create(context.Background(), userID, CreateParams{
			Merchant:  "Swiggy",
			Direction: "DEBIT",
			Amount:    decimal.RequireFromString("100"),
			Category:  "Office Lunch",
		})
		require.NoError(t, err)
		assert.Equal(t, "Office Lunch", tx.Category)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(&mockRepo{}, nil, testLogger())
		amount := decimal.RequireFromString("100")

		tests := []struct {
			name    string
			params  CreateParams
			wantErr error
		}{
			{"bad direction", CreateParams{Merchant: "Swiggy", Direction: "TRANSFER", Amount: amount}, ErrInvalidDirection},
			{"zero amount", CreateParams{Merchant: "Swiggy", Direction: "DEBIT"}, ErrInvalidAmount},
			{"negative amount", CreateParams{Merchant: "Swiggy", Direction: "DEBIT", Amount: decimal.RequireFromString("-5")}, ErrInvalidAmount},
			{"blank merchant", CreateParams{Merchant: "   ", Direction: "DEBIT", Amount: amount}, ErrEmptyMerchant},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), userID, tt.params)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestImportReport(t *testing.T) {
	userID := uuid.New()

	report := &extraction.Report{
		Provider: "phonepe",
		Records: []normalizer.Record{
			{
				Date:        "Feb 13, 2025",
				Time:        "9:45 AM",
				Merchant:    "Swiggy",
				Direction:   grammar.DirectionDebit,
				Amount:      decimal.RequireFromString("250.50"),
				BankAccount: "HDFC 1204",
				Status:      "SUCCESS",
			},
			{
				Date:      "Feb 14, 2025",
				Merchant:  "Anil Sharma",
				Direction: grammar.DirectionCredit,
				Amount:    decimal.RequireFromString("500"),
			},
		},
	}

	t.Run("maps records to rows", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, categorization.NewService(), testLogger())

		inserted, err := svc.ImportReport(context.Background(), userID, report, ImportOptions{AutoCategorize: true})
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)
		require.Len(t, repo.batched, 2)

		first := repo.batched[0]
		assert.Equal(t, userID, first.UserID)
		assert.Equal(t, "Feb 13, 2025", first.TxnDate)
		assert.Equal(t, "9:45 AM", first.TxnTime)
		assert.Equal(t, "DEBIT", first.Direction)
		assert.Equal(t, int64(25050), first.AmountCents)
		assert.Equal(t, "HDFC 1204", first.Bank)
		assert.Equal(t, "SUCCESS", first.Status)
		assert.Equal(t, "phonepe", first.Provider)
		assert.Equal(t, "Food & Dining", first.Category)
	})

	t.Run("categorization can be disabled", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, categorization.NewService(), testLogger())

		_, err := svc.ImportReport(context.Background(), userID, report, ImportOptions{})
		require.NoError(t, err)
		assert.Empty(t, repo.batched[0].Category)
	})

	t.Run("empty report is a no-op", func(t *testing.T) {
		repo := &mockRepo{}
		svc := NewService(repo, nil, testLogger())

		inserted, err := svc.ImportReport(context.Background(), userID, &extraction.Report{}, ImportOptions{})
		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.Empty(t, repo.batched)
	})
}

func TestExportCSV(t *testing.T) {
	repo := &mockRepo{listed: []*repository.Transaction{
		{
			TxnDate:     "13/02/2025",
			Merchant:    "Swiggy",
			Direction:   "DEBIT",
			AmountCents: 25050,
			Currency:    "INR",
			Category:    "Food & Dining",
			Provider:    "phonepe",
		},
	}}
	svc := NewService(repo, nil, testLogger())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), uuid.New(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,time,merchant,type,amount,currency,bank,status,category,provider", lines[0])
	assert.Contains(t, lines[1], "Swiggy")
	assert.Contains(t, lines[1], "250.50")
	assert.Contains(t, lines[1], "Food & Dining")
}
