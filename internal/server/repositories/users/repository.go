// Package users provides persistence for user identity records.
package users

import (
	"context"

	"github.com/researchhub/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
