// Package migrations embeds the goose SQL migrations for every supported
// dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// ForDialect returns the migration directory for d as a rooted fs.FS.
func ForDialect(d dbx.Dialect) (fs.FS, error) {
	switch d {
	case dbx.DialectPostgres:
		return fs.Sub(Migrations, "postgres")
	case dbx.DialectSQLite:
		return fs.Sub(Migrations, "sqlite")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", d)
	}
}

func gooseDialect(d dbx.Dialect) (goose.Dialect, error) {
	switch d {
	case dbx.DialectPostgres:
		return goose.DialectPostgres, nil
	case dbx.DialectSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// Up applies every pending migration for d. It returns the number of
// migrations applied.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) (int, error) {
	fsys, err := ForDialect(d)
	if err != nil {
		return 0, err
	}
	gd, err := gooseDialect(d)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
