package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, e models.Event) error
	ListSince(ctx context.Context, since int64, limit int) ([]models.Event, error)
	Last(ctx context.Context) (seq int64, at time.Time, err error)
}
