package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/musefuse/internal/dbx"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/photos"
	"github.com/dmitrijs2005/musefuse/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DB handle
// and exposes a schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Photos(db dbx.DBTX) photos.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
