package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/dbx"
	"github.com/researchhub/backend/internal/server/models"
)

// PostgresRepository implements repo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, repo *models.Repo) (*models.Repo, error) {
	query :=
		`INSERT INTO repos (name, description, owner_email)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		repo.Name, repo.Description, repo.OwnerEmail).Scan(&repo.ID, &repo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return repo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Repo, error) {
	query :=
		`SELECT id, name, description, owner_email, created_at FROM repos
		 WHERE id = $1
		 `

	repo := &models.Repo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&repo.ID, &repo.Name, &repo.Description, &repo.OwnerEmail, &repo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return repo, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Repo, error) {
	query :=
		`SELECT id, name, description, owner_email, created_at FROM repos
		 WHERE owner_email = $1
		 ORDER BY created_at DESC
		 `
	return r.queryList(ctx, query, ownerEmail)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Repo, error) {
	query :=
		`SELECT id, name, description, owner_email, created_at FROM repos
		 ORDER BY created_at DESC
		 `
	return r.queryList(ctx, query)
}

func (r *PostgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.Repo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select repos: %w", err)
	}
	defer rows.Close()

	var result []*models.Repo
	for rows.Next() {
		var item models.Repo
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.OwnerEmail, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the repo record. Papers referencing the repo are left in
// place; repo deletion does not cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM repos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
