package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/events"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/profiles"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewRepositoryManager(t *testing.T) {
	for _, d := range []string{DriverPostgres, DriverSQLite} {
		m, err := NewRepositoryManager(d)
		require.NoError(t, err)
		require.NotNil(t, m)
	}

	_, err := NewRepositoryManager("mysql")
	require.Error(t, err)
}

func TestFactories(t *testing.T) {
	db := newDB(t)
	m := &SQLRepositoryManager{driver: DriverPostgres}

	var _ profiles.Repository = m.Profiles(db)
	var _ events.Repository = m.Events(db)
	assert.NotNil(t, m.Profiles(db))
	assert.NotNil(t, m.Events(db))
}

func TestRunMigrations(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	m := &SQLRepositoryManager{driver: DriverPostgres}
	require.NoError(t, m.RunMigrations(context.Background(), db))

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	require.EqualError(t, m.RunMigrations(context.Background(), db), "boom")
}

func TestRunMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db, m, err := Open(ctx, "sqlite:file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, m.RunMigrations(ctx, db))
	require.NoError(t, m.RunMigrations(ctx, db), "migrations must be idempotent")

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn        string
		wantDriver string
		wantSource string
	}{
		{"postgres://u:p@localhost:5432/idregistry?sslmode=disable", DriverPostgres, "postgres://u:p@localhost:5432/idregistry?sslmode=disable"},
		{"sqlite:/var/lib/idregistry.db", DriverSQLite, "/var/lib/idregistry.db"},
		{"sqlite:file::memory:", DriverSQLite, "file::memory:"},
	}
	for _, tt := range tests {
		d, s := ParseDSN(tt.dsn)
		assert.Equal(t, tt.wantDriver, d, tt.dsn)
		assert.Equal(t, tt.wantSource, s, tt.dsn)
	}
}

func TestOpen_OpenError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("no driver")
	}

	_, _, err := Open(context.Background(), "postgres://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open pgx")
}
