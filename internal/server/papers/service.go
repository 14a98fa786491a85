// Package papers implements the versioned-document engine: uploads, version
// appends, downloads, deletion and the repo activity feed.
package papers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/dbx"
	"github.com/researchhub/backend/internal/logging"
	"github.com/researchhub/backend/internal/server/blob"
	"github.com/researchhub/backend/internal/server/models"
	"github.com/researchhub/backend/internal/server/repositories/repomanager"
)

// Upload describes one incoming file. Body is read exactly once.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DownloadResult carries a fetched version's bytes and response metadata.
// The caller owns Body.
type DownloadResult struct {
	Body     io.ReadCloser
	FileName string
	FileType string
}

type Service struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	store    blob.Store
	logger   logging.Logger
	maxBytes int64
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, store blob.Store, logger logging.Logger, maxBytes int64) *Service {
	return &Service{
		db:       db,
		rm:       rm,
		store:    store,
		logger:   logger.With("module", "papers"),
		maxBytes: maxBytes,
	}
}

// validateUpload enforces the extension allow-list and the size ceiling
// before any blob or database write happens.
func (s *Service) validateUpload(u Upload) error {
	lower := strings.ToLower(u.FileName)
	if !strings.HasSuffix(lower, ".pdf") && !strings.HasSuffix(lower, ".doc") && !strings.HasSuffix(lower, ".docx") {
		return fmt.Errorf("%w: only PDF/DOC/DOCX allowed", common.ErrorInvalidInput)
	}
	if u.Size > s.maxBytes {
		return fmt.Errorf("%w: file too large (max %d bytes)", common.ErrorInvalidInput, s.maxBytes)
	}
	return nil
}

// Create uploads the first version of a new paper into a repo the caller
// owns. The metadata record is persisted only after the blob store accepted
// the bytes, so a failed upload leaves no partial paper behind.
func (s *Service) Create(ctx context.Context, ownerEmail, repoID, title string, u Upload) (*models.Paper, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorInvalidInput)
	}
	if err := s.validateUpload(u); err != nil {
		return nil, err
	}

	repo, err := s.rm.Repos(s.db).GetByID(ctx, repoID)
	if err != nil {
		return nil, err
	}
	if repo.OwnerEmail != ownerEmail {
		return nil, common.ErrorForbidden
	}

	key := blob.MakeKey(repoID, u.FileName)
	if err := s.store.Store(ctx, key, u.ContentType, u.Body); err != nil {
		return nil, fmt.Errorf("error storing blob: %w", err)
	}

	paper := &models.Paper{
		RepoID:     repoID,
		OwnerEmail: ownerEmail,
		Title:      title,
	}
	first := models.Version{
		FileName:   u.FileName,
		FileType:   u.ContentType,
		StorageKey: key,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.rm.Papers(tx).Create(ctx, paper, first)
		return err
	})
	if err != nil {
		s.cleanupBlob(ctx, key)
		return nil, fmt.Errorf("error creating paper: %w", err)
	}

	return paper, nil
}

// AddVersion appends the next version to a paper the caller owns. The
// version counter is bumped atomically inside the transaction, so two
// concurrent appends get distinct consecutive numbers.
func (s *Service) AddVersion(ctx context.Context, ownerEmail, paperID string, u Upload) (*models.Paper, error) {
	if err := s.validateUpload(u); err != nil {
		return nil, err
	}

	paper, err := s.rm.Papers(s.db).GetByID(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if paper.OwnerEmail != ownerEmail {
		return nil, common.ErrorForbidden
	}

	key := blob.MakeKey(paper.RepoID, u.FileName)
	if err := s.store.Store(ctx, key, u.ContentType, u.Body); err != nil {
		return nil, fmt.Errorf("error storing blob: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		paperStore := s.rm.Papers(tx)

		number, err := paperStore.IncrementCurrentVersion(ctx, paperID)
		if err != nil {
			return err
		}

		return paperStore.AddVersion(ctx, paperID, models.Version{
			VersionNumber: number,
			FileName:      u.FileName,
			FileType:      u.ContentType,
			StorageKey:    key,
		})
	})
	if err != nil {
		s.cleanupBlob(ctx, key)
		return nil, fmt.Errorf("error adding version: %w", err)
	}

	return s.rm.Papers(s.db).GetByID(ctx, paperID)
}

// Download fetches the bytes of one version. versionNumber 0 means latest.
func (s *Service) Download(ctx context.Context, paperID string, versionNumber int) (*DownloadResult, error) {
	paper, err := s.rm.Papers(s.db).GetByID(ctx, paperID)
	if err != nil {
		return nil, err
	}

	if versionNumber == 0 {
		versionNumber = paper.CurrentVersion
	}

	var version *models.Version
	for i := range paper.Versions {
		if paper.Versions[i].VersionNumber == versionNumber {
			version = &paper.Versions[i]
			break
		}
	}
	if version == nil {
		return nil, common.ErrorNotFound
	}

	body, contentType, err := s.store.Fetch(ctx, version.StorageKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching blob: %w", err)
	}

	fileType := version.FileType
	if fileType == "" {
		fileType = contentType
	}
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	fileName := version.FileName
	if fileName == "" {
		key := version.StorageKey
		fileName = key[strings.LastIndex(key, "/")+1:]
	}

	return &DownloadResult{Body: body, FileName: fileName, FileType: fileType}, nil
}

// Delete removes a paper the caller owns. Blob deletions are best effort:
// a failed blob delete is logged and never aborts the metadata removal, so
// no dangling references survive even if some blobs leak.
func (s *Service) Delete(ctx context.Context, ownerEmail, paperID string) error {
	paperStore := s.rm.Papers(s.db)

	paper, err := paperStore.GetByID(ctx, paperID)
	if err != nil {
		return err
	}
	if paper.OwnerEmail != ownerEmail {
		return common.ErrorForbidden
	}

	for _, v := range paper.Versions {
		if v.StorageKey == "" {
			continue
		}
		if err := s.store.Delete(ctx, v.StorageKey); err != nil {
			s.logger.Error(ctx, "failed to delete blob, continuing",
				"paperId", paperID, "version", v.VersionNumber, "key", v.StorageKey, "error", err.Error())
		}
	}

	return paperStore.Delete(ctx, paperID)
}

// ListByRepo returns public per-paper summaries for a repo.
func (s *Service) ListByRepo(ctx context.Context, repoID string) ([]models.PaperSummary, error) {
	return s.rm.Papers(s.db).ListSummariesByRepo(ctx, repoID)
}

// ListMine returns the caller's papers with their full version lists.
func (s *Service) ListMine(ctx context.Context, ownerEmail string) ([]*models.Paper, error) {
	return s.rm.Papers(s.db).ListByOwner(ctx, ownerEmail)
}

// Versions returns a paper with its complete version log.
func (s *Service) Versions(ctx context.Context, paperID string) (*models.Paper, error) {
	return s.rm.Papers(s.db).GetByID(ctx, paperID)
}

// Activity returns the repo's version events, newest first.
func (s *Service) Activity(ctx context.Context, repoID string) ([]models.ActivityEvent, error) {
	return s.rm.Papers(s.db).ActivityByRepo(ctx, repoID)
}

func (s *Service) cleanupBlob(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to clean up blob after aborted write", "key", key, "error", err.Error())
	}
}
