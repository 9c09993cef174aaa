// Package events persists the registry's notification journal.
package events

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

func (r *SQLRepository) Append(ctx context.Context, e models.Event) error {
	query :=
		`INSERT INTO events (seq, id, kind, identity, username, email, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		e.Seq, e.ID, string(e.Kind), e.Identity, e.Username, e.Email, e.Timestamp.UnixMicro())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) ListSince(ctx context.Context, since int64, limit int) ([]models.Event, error) {
	query :=
		`SELECT seq, id, kind, identity, username, email, occurred_at
		 FROM events WHERE seq > $1 ORDER BY seq LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Event, 0)
	for rows.Next() {
		var (
			e    models.Event
			kind string
			at   int64
		)
		if err := rows.Scan(&e.Seq, &e.ID, &kind, &e.Identity, &e.Username, &e.Email, &at); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Kind = models.EventKind(kind)
		e.Timestamp = time.UnixMicro(at).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// Last returns the highest sequence number and the newest event time in the
// journal, or zero values when it is empty.
func (r *SQLRepository) Last(ctx context.Context) (int64, time.Time, error) {
	var seq, at int64
	query := `SELECT COALESCE(MAX(seq), 0), COALESCE(MAX(occurred_at), 0) FROM events`
	if err := r.db.QueryRowContext(ctx, query).Scan(&seq, &at); err != nil {
		return 0, time.Time{}, fmt.Errorf("db error: %w", err)
	}
	if seq == 0 {
		return 0, time.Time{}, nil
	}
	return seq, time.UnixMicro(at).UTC(), nil
}
