// Package repomanager provides the concrete RepositoryManager, wiring
// repository constructors to the configured SQL dialect, and opens the
// database handle for a DSN.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/dmitrijs2005/pitlane/internal/filex"
	"github.com/dmitrijs2005/pitlane/internal/server/migrations"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/gamesessions"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL-backed repository implementations for one
// dialect and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a RepositoryManager for the dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// GameSessions returns a gamesessions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) GameSessions(db dbx.DBTX) gamesessions.Repository {
	return gamesessions.NewSQLRepository(db, m.dialect)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded goose migrations for the manager's
// dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := migrateUp(ctx, db, m.dialect); err != nil {
		return err
	}
	return nil
}

// Open opens the database named by dsn and verifies the connection. SQLite
// handles are limited to a single connection and enforce foreign keys;
// file-backed SQLite databases get their parent directory created first.
func Open(ctx context.Context, dsn string) (*sql.DB, dbx.Dialect, error) {
	dialect := dbx.DialectFromDSN(dsn)

	if dialect == dbx.DialectSQLite {
		if path := sqliteFilePath(dsn); path != "" {
			if err := filex.EnsureDir(filepath.Dir(path)); err != nil {
				return nil, "", err
			}
		}
	}

	if dialect == dbx.DialectSQLite {
		dsn = dbx.WithForeignKeys(dsn)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	return db, dialect, nil
}

// sqliteFilePath extracts the on-disk path of a SQLite DSN, or "" for
// in-memory databases.
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		if strings.Contains(path[i:], "mode=memory") {
			return ""
		}
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}
