// Package papers provides persistence for papers and their version logs.
package papers

import (
	"context"

	"github.com/researchhub/backend/internal/server/models"
)

type Repository interface {
	// Create inserts the paper and its first version in one statement pair.
	// The paper's CurrentVersion must already be 1 and first the only version.
	Create(ctx context.Context, paper *models.Paper, first models.Version) (*models.Paper, error)

	// GetByID loads a paper with its full version list, ordered by version number.
	GetByID(ctx context.Context, id string) (*models.Paper, error)

	// IncrementCurrentVersion atomically bumps the paper's version counter
	// and returns the new value. Run it inside a transaction together with
	// AddVersion so concurrent appends cannot produce duplicate numbers.
	IncrementCurrentVersion(ctx context.Context, paperID string) (int, error)

	// AddVersion appends a version row for the paper.
	AddVersion(ctx context.Context, paperID string, v models.Version) error

	ListByOwner(ctx context.Context, ownerEmail string) ([]*models.Paper, error)
	ListSummariesByRepo(ctx context.Context, repoID string) ([]models.PaperSummary, error)
	ActivityByRepo(ctx context.Context, repoID string) ([]models.ActivityEvent, error)

	// Delete removes the paper record; version rows cascade.
	Delete(ctx context.Context, id string) error
}
