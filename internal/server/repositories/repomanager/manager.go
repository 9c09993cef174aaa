package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/idregistry/internal/dbx"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/events"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/profiles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Events(db dbx.DBTX) events.Repository
}
