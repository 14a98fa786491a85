package models

import "time"

// Repo is a named collection of papers owned by exactly one user.
// OwnerEmail is immutable after creation.
type Repo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerEmail  string    `json:"ownerEmail"`
	CreatedAt   time.Time `json:"createdAt"`
}
