// Package users implements registration, login and identity lookup.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/server/auth"
	"github.com/researchhub/backend/internal/server/config"
	"github.com/researchhub/backend/internal/server/models"
	"github.com/researchhub/backend/internal/server/repositories/repomanager"
)

type Service struct {
	db            *sql.DB
	rm            repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *Service {
	return &Service{
		db:            db,
		rm:            rm,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a user and issues a token for the new identity.
// Returns common.ErrorAlreadyExists when the email is taken.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	repo := s.rm.Users(s.db)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. An unknown email yields
// common.ErrorNotFound; a wrong password common.ErrorInvalidCredentials.
// The two stay distinguishable per the API contract.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.rm.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// GetByEmail resolves the stored user for an authenticated identity.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.rm.Users(s.db).GetByEmail(ctx, email)
}

func (s *Service) issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.Username, user.Email, s.jwtSecret, s.tokenValidity)
}
