package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-ops/meridian/internal/platform/db"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("invoices: not found")

// ErrDuplicateNumber indicates an invoice number collision.
var ErrDuplicateNumber = errors.New("invoices: duplicate number")

const selectColumns = `id, number, client_id, project_id, amount_cents, status, issued_at, due_at, notes, created_at, updated_at`

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches an invoice by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

// List returns invoices matching the filter plus the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Invoice, int, error) {
	where := ""
	args := []interface{}{}
	argPos := 1
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.ClientID != nil {
		where += fmt.Sprintf(" AND client_id = $%d", argPos)
		args = append(args, *filter.ClientID)
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectColumns + ` FROM invoices WHERE 1=1` + where + ` ORDER BY issued_at DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// Create inserts a new invoice. The number uniqueness check and the
// insert run in one transaction.
func (r *Repository) Create(ctx context.Context, number string, input InvoiceInput) (*Invoice, error) {
	now := time.Now().UTC()
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE number = $1)`, number).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrDuplicateNumber
		}
		return tx.QueryRow(ctx, `INSERT INTO invoices (number, client_id, project_id, amount_cents, status, issued_at, due_at, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			number, input.ClientID, optionalID(input.ProjectID), input.Amount, StatusDraft, input.IssuedAt, input.DueAt, input.Notes, now, now).Scan(&id)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the mutable fields of an invoice.
func (r *Repository) Update(ctx context.Context, id int64, input InvoiceInput) (*Invoice, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET client_id = $2, project_id = $3, amount_cents = $4, issued_at = $5, due_at = $6, notes = $7, updated_at = $8 WHERE id = $1`,
		id, input.ClientID, optionalID(input.ProjectID), input.Amount, input.IssuedAt, input.DueAt, input.Notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// UpdateStatus transitions an invoice to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an invoice.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var projectID pgtype.Int8
	if err := row.Scan(&inv.ID, &inv.Number, &inv.ClientID, &projectID, &inv.Amount, &inv.Status, &inv.IssuedAt, &inv.DueAt, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if projectID.Valid {
		inv.ProjectID = &projectID.Int64
	}
	return &inv, nil
}

func optionalID(id *int64) pgtype.Int8 {
	if id == nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: *id, Valid: true}
}
