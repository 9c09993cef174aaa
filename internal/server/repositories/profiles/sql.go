// Package profiles persists registry profiles. The SQL runs unchanged on
// PostgreSQL (pgx) and SQLite (modernc).
package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/dbx"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Upsert(ctx context.Context, p models.Profile) error {
	query :=
		`INSERT INTO profiles (identity, username, email, public_key, registered_at, last_login, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (identity) DO UPDATE SET
		   username = excluded.username,
		   email = excluded.email,
		   public_key = excluded.public_key,
		   last_login = excluded.last_login,
		   is_active = excluded.is_active`

	_, err := r.db.ExecContext(ctx, query,
		p.Identity, p.Username, p.Email, p.PublicKey,
		toMicros(p.RegisteredAt), toMicros(p.LastLogin), p.IsActive)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Profile, error) {
	query :=
		`SELECT identity, username, email, public_key, registered_at, last_login, is_active
		 FROM profiles ORDER BY registered_at, identity`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*models.Profile, error) {
	var (
		p                     models.Profile
		registered, lastLogin int64
	)
	if err := s.Scan(&p.Identity, &p.Username, &p.Email, &p.PublicKey, &registered, &lastLogin, &p.IsActive); err != nil {
		return nil, err
	}
	p.RegisteredAt = fromMicros(registered)
	p.LastLogin = fromMicros(lastLogin)
	return &p, nil
}

// The zero time maps to 0 so an unset last login survives a round trip.
func toMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func fromMicros(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}
