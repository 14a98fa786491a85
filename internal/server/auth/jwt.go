// Package auth implements token issuance/verification and password hashing
// for the ResearchHub server.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/researchhub/backend/internal/common"
)

// Claims carries the authenticated identity inside a signed token.
// Subject duplicates Email so standard tooling can read the principal.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GenerateToken issues an HS256-signed token for the given identity,
// valid for validityDuration from now.
func GenerateToken(username, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
		Email:    email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Any failure (malformed, expired, bad signature) yields ErrInvalidToken so
// callers can treat the request as anonymous.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
