package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/api"
)

// Client is the registry API as the CLI sees it.
type Client interface {
	Close() error
	SetAccessToken(token string)
	Register(ctx context.Context, username, email, publicKey string) (api.Profile, error)
	Login(ctx context.Context) (time.Time, error)
	UpdateProfile(ctx context.Context, username, email, publicKey string) (api.Profile, error)
	Deactivate(ctx context.Context, identity string) error
	Reactivate(ctx context.Context, identity string) error
	IsRegistered(ctx context.Context, identity string) (bool, error)
	IsActive(ctx context.Context, identity string) (bool, error)
	GetProfile(ctx context.Context, identity string) (api.Profile, error)
	ListEvents(ctx context.Context, since int64, limit int) ([]api.Event, error)
	Ping(ctx context.Context) error
}
