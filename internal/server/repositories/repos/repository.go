// Package repos provides persistence for repository records.
package repos

import (
	"context"

	"github.com/researchhub/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, repo *models.Repo) (*models.Repo, error)
	GetByID(ctx context.Context, id string) (*models.Repo, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Repo, error)
	ListAll(ctx context.Context) ([]*models.Repo, error)
	Delete(ctx context.Context, id string) error
}
