package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "idregistry.v1.Registry"

const (
	Registry_Register_FullMethodName      = "/" + ServiceName + "/Register"
	Registry_Login_FullMethodName         = "/" + ServiceName + "/Login"
	Registry_UpdateProfile_FullMethodName = "/" + ServiceName + "/UpdateProfile"
	Registry_Deactivate_FullMethodName    = "/" + ServiceName + "/Deactivate"
	Registry_Reactivate_FullMethodName    = "/" + ServiceName + "/Reactivate"
	Registry_IsRegistered_FullMethodName  = "/" + ServiceName + "/IsRegistered"
	Registry_IsActive_FullMethodName      = "/" + ServiceName + "/IsActive"
	Registry_GetProfile_FullMethodName    = "/" + ServiceName + "/GetProfile"
	Registry_ListEvents_FullMethodName    = "/" + ServiceName + "/ListEvents"
	Registry_Ping_FullMethodName          = "/" + ServiceName + "/Ping"
)

// RegistryServer is the server API for the Registry service.
type RegistryServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	Deactivate(context.Context, *DeactivateRequest) (*DeactivateResponse, error)
	Reactivate(context.Context, *ReactivateRequest) (*ReactivateResponse, error)
	IsRegistered(context.Context, *IdentityRequest) (*IsRegisteredResponse, error)
	IsActive(context.Context, *IdentityRequest) (*IsActiveResponse, error)
	GetProfile(context.Context, *IdentityRequest) (*GetProfileResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedRegistryServer can be embedded to have forward compatible
// implementations.
type UnimplementedRegistryServer struct{}

func (UnimplementedRegistryServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedRegistryServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedRegistryServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfile not implemented")
}
func (UnimplementedRegistryServer) Deactivate(context.Context, *DeactivateRequest) (*DeactivateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Deactivate not implemented")
}
func (UnimplementedRegistryServer) Reactivate(context.Context, *ReactivateRequest) (*ReactivateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Reactivate not implemented")
}
func (UnimplementedRegistryServer) IsRegistered(context.Context, *IdentityRequest) (*IsRegisteredResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsRegistered not implemented")
}
func (UnimplementedRegistryServer) IsActive(context.Context, *IdentityRequest) (*IsActiveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IsActive not implemented")
}
func (UnimplementedRegistryServer) GetProfile(context.Context, *IdentityRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedRegistryServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}
func (UnimplementedRegistryServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&Registry_ServiceDesc, srv)
}

// unaryMethod adapts a typed RegistryServer method to grpc.MethodDesc.
func unaryMethod[Req, Resp any](name string, call func(RegistryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RegistryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RegistryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var Registry_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Register", RegistryServer.Register),
		unaryMethod("Login", RegistryServer.Login),
		unaryMethod("UpdateProfile", RegistryServer.UpdateProfile),
		unaryMethod("Deactivate", RegistryServer.Deactivate),
		unaryMethod("Reactivate", RegistryServer.Reactivate),
		unaryMethod("IsRegistered", RegistryServer.IsRegistered),
		unaryMethod("IsActive", RegistryServer.IsActive),
		unaryMethod("GetProfile", RegistryServer.GetProfile),
		unaryMethod("ListEvents", RegistryServer.ListEvents),
		unaryMethod("Ping", RegistryServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idregistry/v1/registry",
}
