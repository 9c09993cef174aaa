// Package server wires the registry to its journal, notifiers, transports
// and snapshot exporter, and runs them until a signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/idregistry/internal/identity"
	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/config"
	"github.com/dmitrijs2005/idregistry/internal/server/httpapi"
	"github.com/dmitrijs2005/idregistry/internal/server/notify"
	"github.com/dmitrijs2005/idregistry/internal/server/registry"
	"github.com/dmitrijs2005/idregistry/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/idregistry/internal/server/services"
	"github.com/dmitrijs2005/idregistry/internal/server/snapshots"

	gs "github.com/dmitrijs2005/idregistry/internal/server/grpc"
)

// MemoryDSN keeps the journal in process memory.
const MemoryDSN = "memory"

type App struct {
	config   *config.Config
	logger   logging.Logger
	registry *registry.Registry
	closers  []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, slog.LevelInfo))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	owner, err := identity.Normalize(c.OwnerIdentity)
	if err != nil {
		return nil, fmt.Errorf("owner identity: %w", err)
	}

	store, err := app.openStore(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	notifier, err := app.notifier(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	reg, err := registry.Open(ctx, owner,
		registry.WithStore(store),
		registry.WithNotifier(notifier),
		registry.WithLogger(logger))
	if err != nil {
		app.close()
		return nil, err
	}
	app.registry = reg

	return app, nil
}

func (app *App) openStore(ctx context.Context) (registry.Store, error) {
	if app.config.DatabaseDSN == MemoryDSN {
		app.logger.Warn(ctx, "using in-memory journal; state is lost on exit")
		return registry.NewMemoryStore(), nil
	}

	db, m, err := repomanager.Open(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, db)

	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return services.NewLedger(db, m), nil
}

func (app *App) notifier(ctx context.Context) (registry.Notifier, error) {
	fan := notify.Fanout{notify.NewLogNotifier(app.logger)}

	if app.config.RedisURL != "" {
		client, err := notify.ConnectRedis(ctx, app.config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.closers = append(app.closers, client)
		fan = append(fan, notify.NewRedisPublisher(client, app.config.EventsChannel, app.logger))
	}

	return fan, nil
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i].Close()
	}
	app.closers = nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.registry, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.registry, app.config.SecretKey, app.config.AllowedOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startSnapshots(ctx context.Context) {
	e := snapshots.NewExporter(app.registry, app.config, app.logger)

	if err := e.Run(ctx, app.config.SnapshotInterval); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "owner", app.registry.Owner())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startSnapshots(ctx)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}
