package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("subscriptions: not found")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a subscription by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Subscription, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, amount_cents, billing_cycle, due_at, created_at, updated_at FROM subscriptions WHERE id = $1`, id)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// List returns all subscriptions.
func (r *Repository) List(ctx context.Context) ([]Subscription, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, amount_cents, billing_cycle, due_at, created_at, updated_at FROM subscriptions ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

// Create inserts a new subscription.
func (r *Repository) Create(ctx context.Context, input SubscriptionInput) (*Subscription, error) {
	now := time.Now().UTC()
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO subscriptions (name, amount_cents, billing_cycle, due_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		input.Name, input.Amount, input.Cycle, optionalTime(input.DueAt), now, now).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the mutable fields of a subscription.
func (r *Repository) Update(ctx context.Context, id int64, input SubscriptionInput) (*Subscription, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE subscriptions SET name = $2, amount_cents = $3, billing_cycle = $4, due_at = $5, updated_at = $6 WHERE id = $1`,
		id, input.Name, input.Amount, input.Cycle, optionalTime(input.DueAt), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a subscription.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var sub Subscription
	var due pgtype.Timestamptz
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Amount, &sub.Cycle, &due, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time.UTC()
		sub.DueAt = &t
	}
	return &sub, nil
}

func optionalTime(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
