package expenses

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("expenses: not found")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches an expense by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Expense, error) {
	var exp Expense
	err := r.pool.QueryRow(ctx, `SELECT id, category, amount_cents, incurred_at, notes, created_at, updated_at FROM expenses WHERE id = $1`, id).
		Scan(&exp.ID, &exp.Category, &exp.Amount, &exp.IncurredAt, &exp.Notes, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// List returns all expenses, newest first.
func (r *Repository) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, category, amount_cents, incurred_at, notes, created_at, updated_at FROM expenses ORDER BY incurred_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var expenses []Expense
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(&exp.ID, &exp.Category, &exp.Amount, &exp.IncurredAt, &exp.Notes, &exp.CreatedAt, &exp.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Create inserts a new expense.
func (r *Repository) Create(ctx context.Context, input ExpenseInput) (*Expense, error) {
	now := time.Now().UTC()
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO expenses (category, amount_cents, incurred_at, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		input.Category, input.Amount, input.IncurredAt, input.Notes, now, now).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the mutable fields of an expense.
func (r *Repository) Update(ctx context.Context, id int64, input ExpenseInput) (*Expense, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE expenses SET category = $2, amount_cents = $3, incurred_at = $4, notes = $5, updated_at = $6 WHERE id = $1`,
		id, input.Category, input.Amount, input.IncurredAt, input.Notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes an expense.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
