package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/api"
	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// registrySvc is the part of *registry.Registry the transport needs.
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

type GRPCServer struct {
	api.UnimplementedRegistryServer
	address   string
	registry  registrySvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, r registrySvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		registry:  r,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.serve(ctx, listen)
}

// serve blocks accepting connections on lis until ctx is cancelled.
func (s *GRPCServer) serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterRegistryServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
