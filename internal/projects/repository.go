package projects

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates resource not found.
var ErrNotFound = errors.New("projects: not found")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectColumns = `id, client_id, name, status, description, created_at, updated_at`

// Get fetches a project by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListByClient returns projects, optionally filtered to one client.
func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects ORDER BY name, id`
	args := []interface{}{}
	if clientID > 0 {
		query = `SELECT ` + selectColumns + ` FROM projects WHERE client_id = $1 ORDER BY name, id`
		args = append(args, clientID)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new project.
func (r *Repository) Create(ctx context.Context, input ProjectInput) (*Project, error) {
	now := time.Now().UTC()
	var id int64
	err := r.pool.QueryRow(ctx, `INSERT INTO projects (client_id, name, status, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		input.ClientID, input.Name, input.Status, input.Description, now, now).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the mutable fields of a project.
func (r *Repository) Update(ctx context.Context, id int64, input ProjectInput) (*Project, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET client_id = $2, name = $3, status = $4, description = $5, updated_at = $6 WHERE id = $1`,
		id, input.ClientID, input.Name, input.Status, input.Description, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a project.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Status, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
