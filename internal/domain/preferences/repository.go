// Package preferences stores per-user application settings.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Preferences are per-user settings. Missing rows fall back to Default.
type Preferences struct {
	UserID               uuid.UUID `json:"-"`
	Currency             string    `json:"currency"`
	Theme                string    `json:"theme"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	AutoCategorize       bool      `json:"auto_categorize"`
}

// Default returns the settings applied before a user saves any.
func Default(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:               userID,
		Currency:             "INR",
		Theme:                "light",
		NotificationsEnabled: true,
		AutoCategorize:       true,
	}
}

// Repository persists preferences.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Preferences, error)
	Upsert(ctx context.Context, p *Preferences) error
}

// DB is the subset of pgxpool.Pool the repository uses. Narrowing it keeps
// the repository testable against a mock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository creates a new PostgreSQL preferences repository
func NewPostgresRepository(pool DB) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the user's preferences, or the defaults when none are stored
func (r *PostgresRepository) Get(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	query := `
		SELECT currency, theme, notifications_enabled, auto_categorize
		FROM preferences
		WHERE user_id = $1`

	p := &Preferences{UserID: userID}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.Currency,
		&p.Theme,
		&p.NotificationsEnabled,
		&p.AutoCategorize,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Default(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return p, nil
}

// Upsert stores the user's preferences
func (r *PostgresRepository) Upsert(ctx context.Context, p *Preferences) error {
	query := `
		INSERT INTO preferences (user_id, currency, theme, notifications_enabled, auto_categorize)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET currency = $2, theme = $3, notifications_enabled = $4, auto_categorize = $5`

	_, err := r.pool.Exec(ctx, query,
		p.UserID, p.Currency, p.Theme, p.NotificationsEnabled, p.AutoCategorize,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
