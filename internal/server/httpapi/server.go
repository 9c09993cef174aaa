// Package httpapi is the JSON-over-HTTP gateway to the registry, used by
// browser clients. It exposes the same operations and error semantics as
// the gRPC service.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type registrySvc interface {
	Register(ctx context.Context, identity, username, email, publicKey string) (models.Profile, error)
	Login(ctx context.Context, identity string) (time.Time, error)
	UpdateProfile(ctx context.Context, identity, username, email, publicKey string) (models.Profile, error)
	Deactivate(ctx context.Context, identity, actor string) error
	Reactivate(ctx context.Context, identity, actor string) error
	IsRegistered(identity string) bool
	IsActive(identity string) bool
	GetProfile(identity string) (models.Profile, error)
	Events(ctx context.Context, since int64, limit int) ([]models.Event, error)
}

const shutdownTimeout = 5 * time.Second

type Server struct {
	address        string
	registry       registrySvc
	logger         logging.Logger
	jwtSecret      []byte
	allowedOrigins []string
}

func NewServer(a string, l logging.Logger, r registrySvc, secretKey string, allowedOrigins []string) *Server {
	return &Server{
		address:        a,
		registry:       r,
		logger:         l.With("module", "http_server"),
		jwtSecret:      []byte(secretKey),
		allowedOrigins: allowedOrigins,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", s.listEvents)

		r.Route("/profiles/{identity}", func(r chi.Router) {
			r.Get("/", s.getProfile)
			r.Get("/registered", s.isRegistered)
			r.Get("/active", s.isActive)

			r.With(s.bearerAuth).Post("/deactivate", s.deactivate)
			r.With(s.bearerAuth).Post("/reactivate", s.reactivate)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.bearerAuth)
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Put("/profile", s.updateProfile)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
