// Package repository provides transaction persistence.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when no transaction matches the lookup.
var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is a single statement entry owned by a user. Statement dates
// and times are stored verbatim as they appeared on the document.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	TxnDate     string    `json:"date"`
	TxnTime     string    `json:"time,omitempty"`
	Merchant    string    `json:"merchant"`
	Direction   string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Bank        string    `json:"bank,omitempty"`
	Status      string    `json:"status,omitempty"`
	Category    string    `json:"category,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionRepository persists transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	CreateBatch(ctx context.Context, txs []*Transaction) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
