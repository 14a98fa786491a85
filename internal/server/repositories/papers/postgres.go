package papers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/dbx"
	"github.com/researchhub/backend/internal/server/models"
)

// PostgresRepository implements paper storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, paper *models.Paper, first models.Version) (*models.Paper, error) {
	query :=
		`INSERT INTO papers (repo_id, owner_email, title, current_version)
		 VALUES ($1, $2, $3, 1)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		paper.RepoID, paper.OwnerEmail, paper.Title).Scan(&paper.ID, &paper.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	first.VersionNumber = 1
	if err := r.insertVersion(ctx, paper.ID, &first); err != nil {
		return nil, err
	}

	paper.CurrentVersion = 1
	paper.Versions = []models.Version{first}
	return paper, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Paper, error) {
	query :=
		`SELECT id, repo_id, owner_email, title, current_version, created_at FROM papers
		 WHERE id = $1
		 `

	paper := &models.Paper{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&paper.ID, &paper.RepoID, &paper.OwnerEmail, &paper.Title, &paper.CurrentVersion, &paper.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	versions, err := r.versionsOf(ctx, paper.ID)
	if err != nil {
		return nil, err
	}
	paper.Versions = versions

	return paper, nil
}

// IncrementCurrentVersion relies on the database to serialize the counter
// bump, so two concurrent appends can never observe the same value.
func (r *PostgresRepository) IncrementCurrentVersion(ctx context.Context, paperID string) (int, error) {
	query :=
		`UPDATE papers SET current_version = current_version + 1
		 WHERE id = $1
		 RETURNING current_version
		 `

	var version int
	err := r.db.QueryRowContext(ctx, query, paperID).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return version, nil
}

func (r *PostgresRepository) AddVersion(ctx context.Context, paperID string, v models.Version) error {
	return r.insertVersion(ctx, paperID, &v)
}

func (r *PostgresRepository) insertVersion(ctx context.Context, paperID string, v *models.Version) error {
	query :=
		`INSERT INTO paper_versions (paper_id, version_number, file_name, file_type, storage_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		paperID, v.VersionNumber, v.FileName, v.FileType, v.StorageKey).Scan(&v.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) versionsOf(ctx context.Context, paperID string) ([]models.Version, error) {
	query :=
		`SELECT version_number, file_name, file_type, storage_key, uploaded_at FROM paper_versions
		 WHERE paper_id = $1
		 ORDER BY version_number
		 `

	rows, err := r.db.QueryContext(ctx, query, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to select versions: %w", err)
	}
	defer rows.Close()

	var result []models.Version
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(&v.VersionNumber, &v.FileName, &v.FileType, &v.StorageKey, &v.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Paper, error) {
	query :=
		`SELECT id, repo_id, owner_email, title, current_version, created_at FROM papers
		 WHERE owner_email = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to select papers: %w", err)
	}
	defer rows.Close()

	var result []*models.Paper
	for rows.Next() {
		var p models.Paper
		if err := rows.Scan(&p.ID, &p.RepoID, &p.OwnerEmail, &p.Title, &p.CurrentVersion, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range result {
		versions, err := r.versionsOf(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Versions = versions
	}

	return result, nil
}

// ListSummariesByRepo returns one row per paper, carrying only the current
// version's file metadata.
func (r *PostgresRepository) ListSummariesByRepo(ctx context.Context, repoID string) ([]models.PaperSummary, error) {
	query :=
		`SELECT p.id, p.title, p.owner_email, p.current_version, v.uploaded_at, v.file_name, v.file_type
		 FROM papers p
		 JOIN paper_versions v ON v.paper_id = p.id AND v.version_number = p.current_version
		 WHERE p.repo_id = $1
		 ORDER BY v.uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to select paper summaries: %w", err)
	}
	defer rows.Close()

	var result []models.PaperSummary
	for rows.Next() {
		var s models.PaperSummary
		if err := rows.Scan(&s.PaperID, &s.Title, &s.OwnerEmail, &s.CurrentVersion, &s.UploadedAt, &s.FileName, &s.FileType); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ActivityByRepo flattens every version of every paper in the repo into one
// event list, newest first. Ties on uploaded_at are broken by paper id and
// version number so the order is deterministic.
func (r *PostgresRepository) ActivityByRepo(ctx context.Context, repoID string) ([]models.ActivityEvent, error) {
	query :=
		`SELECT p.id, p.title, p.owner_email, v.version_number, v.file_name, v.file_type, v.uploaded_at
		 FROM paper_versions v
		 JOIN papers p ON p.id = v.paper_id
		 WHERE p.repo_id = $1
		 ORDER BY v.uploaded_at DESC, p.id, v.version_number
		 `

	rows, err := r.db.QueryContext(ctx, query, repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to select activity: %w", err)
	}
	defer rows.Close()

	var result []models.ActivityEvent
	for rows.Next() {
		var e models.ActivityEvent
		if err := rows.Scan(&e.PaperID, &e.PaperTitle, &e.OwnerEmail, &e.VersionNumber, &e.FileName, &e.FileType, &e.UploadedAt); err != nil {
			return nil, err
		}
		if e.VersionNumber == 1 {
			e.ActionType = "uploaded"
		} else {
			e.ActionType = "updated"
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM papers WHERE id = $1`, id)
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
