package profiles

import (
	"context"

	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, p models.Profile) error
	List(ctx context.Context) ([]models.Profile, error)
}
