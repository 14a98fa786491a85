// Package models holds the server-side domain records persisted in PostgreSQL.
package models

import "time"

// User is an identity record. The email is the unique login key.
// The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
