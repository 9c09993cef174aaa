package api

import (
	"context"

	"google.golang.org/grpc"
)

// RegistryClient is the client API for the Registry service. Every call is
// sent with the JSON content-subtype.
type RegistryClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error)
	Deactivate(ctx context.Context, in *DeactivateRequest, opts ...grpc.CallOption) (*DeactivateResponse, error)
	Reactivate(ctx context.Context, in *ReactivateRequest, opts ...grpc.CallOption) (*ReactivateResponse, error)
	IsRegistered(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*IsRegisteredResponse, error)
	IsActive(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*IsActiveResponse, error)
	GetProfile(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type registryClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryClient(cc grpc.ClientConnInterface) RegistryClient {
	return &registryClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Registry_Register_FullMethodName, in, opts)
}

func (c *registryClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Registry_Login_FullMethodName, in, opts)
}

func (c *registryClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, Registry_UpdateProfile_FullMethodName, in, opts)
}

func (c *registryClient) Deactivate(ctx context.Context, in *DeactivateRequest, opts ...grpc.CallOption) (*DeactivateResponse, error) {
	return invoke[DeactivateResponse](ctx, c.cc, Registry_Deactivate_FullMethodName, in, opts)
}

func (c *registryClient) Reactivate(ctx context.Context, in *ReactivateRequest, opts ...grpc.CallOption) (*ReactivateResponse, error) {
	return invoke[ReactivateResponse](ctx, c.cc, Registry_Reactivate_FullMethodName, in, opts)
}

func (c *registryClient) IsRegistered(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*IsRegisteredResponse, error) {
	return invoke[IsRegisteredResponse](ctx, c.cc, Registry_IsRegistered_FullMethodName, in, opts)
}

func (c *registryClient) IsActive(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*IsActiveResponse, error) {
	return invoke[IsActiveResponse](ctx, c.cc, Registry_IsActive_FullMethodName, in, opts)
}

func (c *registryClient) GetProfile(ctx context.Context, in *IdentityRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, Registry_GetProfile_FullMethodName, in, opts)
}

func (c *registryClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, Registry_ListEvents_FullMethodName, in, opts)
}

func (c *registryClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, Registry_Ping_FullMethodName, in, opts)
}
