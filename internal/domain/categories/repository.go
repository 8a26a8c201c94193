// Package categories manages user-defined spending categories.
package categories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrCategoryNotFound is returned when no category matches the lookup.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when the name is already taken.
	ErrCategoryExists = errors.New("category already exists")
)

// Category is a user-defined spending bucket.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL category repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new category
func (r *PostgresRepository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, color, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Icon).Scan(&c.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListByUser retrieves all categories for a user, alphabetically
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := `
		SELECT id, user_id, name, color, icon, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update modifies a category's name, color, and icon
func (r *PostgresRepository) Update(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $3, color = $4, icon = $5
		WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Icon)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category owned by the user
func (r *PostgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
