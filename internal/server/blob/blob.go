// Package blob abstracts the external store that holds raw file bytes.
// Papers reference blobs by opaque storage keys; all metadata stays in
// the database.
package blob

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// Store is the blob-store collaborator. Implementations must treat keys as
// opaque and return common.ErrorNotFound from Fetch for missing keys.
type Store interface {
	// Store writes the blob under key. contentType may be empty.
	Store(ctx context.Context, key, contentType string, r io.Reader) error

	// Fetch returns the blob body and the stored content type.
	// The caller owns the returned ReadCloser.
	Fetch(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MakeKey builds a fresh storage key for an uploaded file, namespaced by
// repo and keeping the original extension so fetched objects remain
// recognizable in the store.
func MakeKey(repoID, fileName string) string {
	return "repos/" + repoID + "/" + uuid.NewString() + filepath.Ext(fileName)
}
