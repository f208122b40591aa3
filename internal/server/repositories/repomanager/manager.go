package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/gamesessions"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	GameSessions(db dbx.DBTX) gamesessions.Repository
}
