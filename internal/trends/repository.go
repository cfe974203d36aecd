package trends

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed access to the raw financial records.
// Reads only; mutation lives with the owning CRUD modules.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListInvoicesFrom returns invoices issued on or after the given instant.
func (r *Repository) ListInvoicesFrom(ctx context.Context, from time.Time) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, amount_cents, status, issued_at, due_at FROM invoices WHERE issued_at >= $1 ORDER BY issued_at`, dateParam(from))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListExpensesFrom returns one-time expenses incurred on or after the given instant.
func (r *Repository) ListExpensesFrom(ctx context.Context, from time.Time) ([]Expense, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, amount_cents, incurred_at FROM expenses WHERE incurred_at >= $1 ORDER BY incurred_at`, dateParam(from))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var expenses []Expense
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(&exp.ID, &exp.Amount, &exp.IncurredAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ListSubscriptions returns all subscriptions. Recurring cost applies
// regardless of when a subscription was created, so there is no year filter.
func (r *Repository) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, amount_cents, billing_cycle, due_at FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		var due pgtype.Timestamptz
		if err := rows.Scan(&sub.ID, &sub.Amount, &sub.Cycle, &due); err != nil {
			return nil, err
		}
		if due.Valid {
			t := due.Time.UTC()
			sub.DueAt = &t
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListClients returns all clients for presentation joins.
func (r *Repository) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func dateParam(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}
