// Package notify delivers committed registry events to observers. Delivery
// is best-effort: failures are logged and never reach the caller of the
// registry operation, since the journal can always be replayed.
package notify

import (
	"context"

	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/dmitrijs2005/idregistry/internal/server/registry"
)

// LogNotifier writes one structured log line per event.
type LogNotifier struct {
	logger logging.Logger
}

var _ registry.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notify")}
}

func (n *LogNotifier) Notify(ctx context.Context, events []models.Event) {
	for _, e := range events {
		args := []any{"seq", e.Seq, "id", e.ID, "kind", e.Kind, "identity", e.Identity, "timestamp", e.Timestamp}
		if e.Kind != models.EventLoggedIn {
			args = append(args, "username", e.Username, "email", e.Email)
		}
		n.logger.Info(ctx, "event", args...)
	}
}

// Fanout hands every batch to each notifier in order.
type Fanout []registry.Notifier

func (f Fanout) Notify(ctx context.Context, events []models.Event) {
	for _, n := range f {
		n.Notify(ctx, events)
	}
}
