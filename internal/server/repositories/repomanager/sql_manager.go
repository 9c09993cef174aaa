// Package repomanager wires the SQL repositories to a database driver and
// runs the embedded schema migrations via goose.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/idregistry/internal/dbx"
	"github.com/dmitrijs2005/idregistry/internal/server/migrations"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/events"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/profiles"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	sqlitePrefix = "sqlite:"
)

var gooseDialects = map[string]string{
	DriverPostgres: "pgx",
	DriverSQLite:   "sqlite3",
}

// SQLRepositoryManager vends SQL-backed repositories and migrates the
// schema for its driver.
type SQLRepositoryManager struct {
	driver string
}

func (m *SQLRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(gooseDialects[m.driver]); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewRepositoryManager returns a manager for one of the supported drivers.
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	if _, ok := gooseDialects[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &SQLRepositoryManager{driver: driver}, nil
}

// ParseDSN picks the driver for a DSN. "sqlite:<path>" selects SQLite,
// anything else is handed to pgx.
func ParseDSN(dsn string) (driver, source string) {
	if rest, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return DriverSQLite, rest
	}
	return DriverPostgres, dsn
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to dsn, checks the connection, and returns the pool
// together with a matching manager.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driver, source := ParseDSN(dsn)

	m, err := NewRepositoryManager(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sqlOpen(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One writer at a time; the registry serializes writes anyway.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, m, nil
}
