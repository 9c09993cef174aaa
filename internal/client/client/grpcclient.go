package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/api"
	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.RegistryClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withMetadata(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(key, value)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token != "" {
		ctx = withMetadata(ctx, common.AccessTokenHeaderName, token)
	}
	ctx = withMetadata(ctx, common.RequestIDHeaderName, uuid.NewString())

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewRegistryClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewRegistryClient(conn)
	return nil
}

func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, username, email, publicKey string) (api.Profile, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Email: email, PublicKey: publicKey})
	if err != nil {
		return api.Profile{}, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) Login(ctx context.Context) (time.Time, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{})
	if err != nil {
		return time.Time{}, s.mapError(err)
	}
	return resp.LastLogin, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, username, email, publicKey string) (api.Profile, error) {
	resp, err := s.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Username: username, Email: email, PublicKey: publicKey})
	if err != nil {
		return api.Profile{}, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) Deactivate(ctx context.Context, identity string) error {
	_, err := s.client.Deactivate(ctx, &api.DeactivateRequest{Identity: identity})
	return s.mapError(err)
}

func (s *GRPCClient) Reactivate(ctx context.Context, identity string) error {
	_, err := s.client.Reactivate(ctx, &api.ReactivateRequest{Identity: identity})
	return s.mapError(err)
}

func (s *GRPCClient) IsRegistered(ctx context.Context, identity string) (bool, error) {
	resp, err := s.client.IsRegistered(ctx, &api.IdentityRequest{Identity: identity})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Registered, nil
}

func (s *GRPCClient) IsActive(ctx context.Context, identity string) (bool, error) {
	resp, err := s.client.IsActive(ctx, &api.IdentityRequest{Identity: identity})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Active, nil
}

func (s *GRPCClient) GetProfile(ctx context.Context, identity string) (api.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.IdentityRequest{Identity: identity})
	if err != nil {
		return api.Profile{}, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) ListEvents(ctx context.Context, since int64, limit int) ([]api.Event, error) {
	resp, err := s.client.ListEvents(ctx, &api.ListEventsRequest{Since: since, Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Events, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.PingRequest{})
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}
	if known, ok := knownErrors[st.Message()]; ok {
		return known
	}
	return fmt.Errorf("rpc error: %w", err)
}
