package papers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/researchhub/backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementCurrentVersion_ReturnsNewValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE papers SET current_version = current_version \\+ 1").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"current_version"}).AddRow(3))

	r := NewPostgresRepository(db)
	version, err := r.IncrementCurrentVersion(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestIncrementCurrentVersion_MissingPaper(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE papers SET current_version = current_version \\+ 1").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"current_version"}))

	r := NewPostgresRepository(db)
	_, err = r.IncrementCurrentVersion(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestActivityByRepo_ActionTypes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t2 := time.Now()
	t1 := t2.Add(-time.Hour)
	mock.ExpectQuery("FROM paper_versions v").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "owner_email", "version_number", "file_name", "file_type", "uploaded_at"}).
			AddRow("p1", "Thesis", "alice@example.com", 2, "v2.pdf", "application/pdf", t2).
			AddRow("p1", "Thesis", "alice@example.com", 1, "v1.pdf", "application/pdf", t1))

	r := NewPostgresRepository(db)
	events, err := r.ActivityByRepo(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "updated", events[0].ActionType)
	assert.Equal(t, 2, events[0].VersionNumber)
	assert.Equal(t, "uploaded", events[1].ActionType)
	assert.Equal(t, 1, events[1].VersionNumber)
	assert.True(t, !events[0].UploadedAt.Before(events[1].UploadedAt), "events must be newest first")
}

func TestListSummariesByRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("JOIN paper_versions v").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "owner_email", "current_version", "uploaded_at", "file_name", "file_type"}).
			AddRow("p1", "Thesis", "alice@example.com", 2, now, "v2.pdf", "application/pdf"))

	r := NewPostgresRepository(db)
	summaries, err := r.ListSummariesByRepo(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].CurrentVersion)
	assert.Equal(t, "v2.pdf", summaries[0].FileName)
}

func TestDelete_MissingPaper(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM papers").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPostgresRepository(db)
	err = r.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_LoadsVersionsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, repo_id, owner_email, title, current_version, created_at FROM papers").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "repo_id", "owner_email", "title", "current_version", "created_at"}).
			AddRow("p1", "r1", "alice@example.com", "Thesis", 2, now))
	mock.ExpectQuery("FROM paper_versions").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"version_number", "file_name", "file_type", "storage_key", "uploaded_at"}).
			AddRow(1, "v1.pdf", "application/pdf", "repos/r1/a.pdf", now.Add(-time.Hour)).
			AddRow(2, "v2.pdf", "application/pdf", "repos/r1/b.pdf", now))

	r := NewPostgresRepository(db)
	paper, err := r.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, paper.Versions, 2)
	assert.Equal(t, 1, paper.Versions[0].VersionNumber)
	assert.Equal(t, 2, paper.Versions[1].VersionNumber)
	assert.Equal(t, paper.CurrentVersion, paper.Versions[len(paper.Versions)-1].VersionNumber)
}
