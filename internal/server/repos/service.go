// Package repos implements repository management: create, list, delete.
package repos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/server/models"
	"github.com/researchhub/backend/internal/server/repositories/repomanager"
)

type Service struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager) *Service {
	return &Service{db: db, rm: rm}
}

// Create stores a new repo owned by the caller. The owner is always the
// authenticated identity, never request data.
func (s *Service) Create(ctx context.Context, ownerEmail, name, description string) (*models.Repo, error) {
	if name == "" {
		return nil, common.ErrorInvalidInput
	}

	repo, err := s.rm.Repos(s.db).Create(ctx, &models.Repo{
		Name:        name,
		Description: description,
		OwnerEmail:  ownerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating repo: %w", err)
	}
	return repo, nil
}

// ListMine returns the caller's repos, newest first.
func (s *Service) ListMine(ctx context.Context, ownerEmail string) ([]*models.Repo, error) {
	return s.rm.Repos(s.db).ListByOwner(ctx, ownerEmail)
}

// ListAll returns every repo; the global listing is public.
func (s *Service) ListAll(ctx context.Context) ([]*models.Repo, error) {
	return s.rm.Repos(s.db).ListAll(ctx)
}

// Delete removes a repo after an ownership check. Papers inside the repo
// are left untouched; deletion does not cascade.
func (s *Service) Delete(ctx context.Context, ownerEmail, repoID string) error {
	repoStore := s.rm.Repos(s.db)

	repo, err := repoStore.GetByID(ctx, repoID)
	if err != nil {
		return err
	}
	if repo.OwnerEmail != ownerEmail {
		return common.ErrorForbidden
	}

	return repoStore.Delete(ctx, repoID)
}
