package dbx

import (
	"regexp"
	"strings"
)

// Dialect selects the database/sql driver and placeholder style.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite"
)

// DialectFromDSN picks PostgreSQL for postgres:// URLs and key=value DSNs
// containing host=, SQLite for everything else (file paths, ":memory:",
// "file:" URIs).
func DialectFromDSN(dsn string) Dialect {
	d := strings.TrimSpace(dsn)
	if strings.HasPrefix(d, "postgres://") || strings.HasPrefix(d, "postgresql://") {
		return DialectPostgres
	}
	if strings.Contains(d, "host=") {
		return DialectPostgres
	}
	return DialectSQLite
}

// DriverName is the name the driver registers with database/sql.
func (d Dialect) DriverName() string {
	return string(d)
}

var numberedPlaceholder = regexp.MustCompile(`\$[0-9]+`)

// Rebind rewrites a query written with PostgreSQL $N placeholders for the
// dialect. Queries must reference each argument once and in order, which
// holds for every query in this repository.
func (d Dialect) Rebind(query string) string {
	if d != DialectSQLite {
		return query
	}
	return numberedPlaceholder.ReplaceAllString(query, "?")
}

// WithForeignKeys returns a SQLite DSN that enables foreign key enforcement
// on every connection the driver opens. DSNs that already set the
// foreign_keys pragma are returned unchanged.
func WithForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
