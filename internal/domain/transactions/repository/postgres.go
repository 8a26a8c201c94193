package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTransactionRepository implements TransactionRepository using PostgreSQL
type PostgresTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTransactionRepository creates a new PostgreSQL transaction repository
func NewPostgresTransactionRepository(pool *pgxpool.Pool) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{pool: pool}
}

// Create inserts a single transaction
func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, txn_date, txn_time, merchant, direction, amount_cents, currency, bank, status, category, provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.TxnDate,
		tx.TxnTime,
		tx.Merchant,
		tx.Direction,
		tx.AmountCents,
		tx.Currency,
		tx.Bank,
		tx.Status,
		tx.Category,
		tx.Provider,
	).Scan(&tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch bulk-inserts transactions using the COPY protocol and returns
// the number of rows written.
func (r *PostgresTransactionRepository) CreateBatch(ctx context.Context, txs []*Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	now := time.Now()
	rows := make([][]any, 0, len(txs))
	for _, tx := range txs {
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		tx.CreatedAt = now
		rows = append(rows, []any{
			tx.ID, tx.UserID, tx.TxnDate, tx.TxnTime, tx.Merchant, tx.Direction,
			tx.AmountCents, tx.Currency, tx.Bank, tx.Status, tx.Category, tx.Provider, now,
		})
	}

	copied, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "user_id", "txn_date", "txn_time", "merchant", "direction", "amount_cents", "currency", "bank", "status", "category", "provider", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert transactions: %w", err)
	}
	return int(copied), nil
}

// ListByUser retrieves all transactions for a user, newest first
func (r *PostgresTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, txn_date, txn_time, merchant, direction, amount_cents, currency, bank, status, category, provider, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.TxnDate,
			&tx.TxnTime,
			&tx.Merchant,
			&tx.Direction,
			&tx.AmountCents,
			&tx.Currency,
			&tx.Bank,
			&tx.Status,
			&tx.Category,
			&tx.Provider,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Delete removes a transaction owned by the user
func (r *PostgresTransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
