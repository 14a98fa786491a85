package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/researchhub/backend/internal/common"
	"github.com/researchhub/backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO repos").
		WithArgs("ml-papers", "notes", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("r1", now))

	r := NewPostgresRepository(db)
	repo, err := r.Create(context.Background(), &models.Repo{
		Name: "ml-papers", Description: "notes", OwnerEmail: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", repo.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, description, owner_email, created_at FROM repos").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "owner_email", "created_at"}))

	r := NewPostgresRepository(db)
	_, err = r.GetByID(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, description, owner_email, created_at FROM repos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "owner_email", "created_at"}).
			AddRow("r1", "a", "", "alice@example.com", now).
			AddRow("r2", "b", "", "bob@example.com", now))

	r := NewPostgresRepository(db)
	repos, err := r.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, repos, 2)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM repos").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPostgresRepository(db)
	err = r.Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
