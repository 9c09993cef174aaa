// Package services contains server-side business plumbing. This file
// implements Ledger, the SQL journal behind the registry: every committed
// registry operation becomes one database transaction holding the resulting
// profile row and the events it emitted.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/idregistry/internal/dbx"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/dmitrijs2005/idregistry/internal/server/registry"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/repomanager"
)

// Ledger implements registry.Store on top of the repository manager.
type Ledger struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

var _ registry.Store = (*Ledger)(nil)

func NewLedger(db *sql.DB, m repomanager.RepositoryManager) *Ledger {
	return &Ledger{db: db, repomanager: m}
}

// Load reads every profile and the position of the journal tail.
func (l *Ledger) Load(ctx context.Context) (registry.Snapshot, error) {
	list, err := l.repomanager.Profiles(l.db).List(ctx)
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("error loading profiles: %w", err)
	}
	seq, at, err := l.repomanager.Events(l.db).Last(ctx)
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("error loading last event: %w", err)
	}
	return registry.Snapshot{Profiles: list, LastSeq: seq, LastTime: at}, nil
}

// Commit writes the profile and its events in one transaction.
func (l *Ledger) Commit(ctx context.Context, c registry.Change) error {
	return dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := l.repomanager.Profiles(tx).Upsert(ctx, c.Profile); err != nil {
			return fmt.Errorf("error saving profile: %w", err)
		}
		events := l.repomanager.Events(tx)
		for _, e := range c.Events {
			if err := events.Append(ctx, e); err != nil {
				return fmt.Errorf("error appending event %d: %w", e.Seq, err)
			}
		}
		return nil
	})
}

func (l *Ledger) Events(ctx context.Context, since int64, limit int) ([]models.Event, error) {
	list, err := l.repomanager.Events(l.db).ListSince(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return list, nil
}
