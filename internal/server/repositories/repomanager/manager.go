// Package repomanager wires repository constructors together with database
// migrations so services can obtain repositories bound to either a *sql.DB
// or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/researchhub/backend/internal/dbx"
	"github.com/researchhub/backend/internal/server/repositories/papers"
	"github.com/researchhub/backend/internal/server/repositories/repos"
	"github.com/researchhub/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Repos(db dbx.DBTX) repos.Repository
	Papers(db dbx.DBTX) papers.Repository
}
