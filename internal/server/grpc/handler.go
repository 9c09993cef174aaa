package grpc

import (
	"context"

	"github.com/dmitrijs2005/idregistry/internal/api"
	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/dmitrijs2005/idregistry/internal/identity"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
)

func (s *GRPCServer) caller(ctx context.Context) (string, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return "", toStatus(common.ErrMissingToken)
	}
	return id, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.registry.Register(ctx, id, req.Username, req.Email, req.PublicKey)
	if err != nil {
		s.logger.Info(ctx, "registration rejected", "identity", id, "error", err)
		return nil, toStatus(err)
	}

	return &api.RegisterResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	at, err := s.registry.Login(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginResponse{LastLogin: at}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.UpdateProfileResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.registry.UpdateProfile(ctx, id, req.Username, req.Email, req.PublicKey)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.UpdateProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) Deactivate(ctx context.Context, req *api.DeactivateRequest) (*api.DeactivateResponse, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	target := actor
	if req.Identity != "" {
		if target, err = identity.Normalize(req.Identity); err != nil {
			return nil, toStatus(err)
		}
	}

	if err := s.registry.Deactivate(ctx, target, actor); err != nil {
		return nil, toStatus(err)
	}
	return &api.DeactivateResponse{}, nil
}

func (s *GRPCServer) Reactivate(ctx context.Context, req *api.ReactivateRequest) (*api.ReactivateResponse, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	target, err := identity.Normalize(req.Identity)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.registry.Reactivate(ctx, target, actor); err != nil {
		return nil, toStatus(err)
	}
	return &api.ReactivateResponse{}, nil
}

func (s *GRPCServer) IsRegistered(ctx context.Context, req *api.IdentityRequest) (*api.IsRegisteredResponse, error) {
	id, err := identity.Normalize(req.Identity)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.IsRegisteredResponse{Registered: s.registry.IsRegistered(id)}, nil
}

func (s *GRPCServer) IsActive(ctx context.Context, req *api.IdentityRequest) (*api.IsActiveResponse, error) {
	id, err := identity.Normalize(req.Identity)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.IsActiveResponse{Active: s.registry.IsActive(id)}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.IdentityRequest) (*api.GetProfileResponse, error) {
	id, err := identity.Normalize(req.Identity)
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := s.registry.GetProfile(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GetProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	events, err := s.registry.Events(ctx, req.Since, int(req.Limit))
	if err != nil {
		s.logger.Error(ctx, "list events failed", "error", err)
		return nil, toStatus(err)
	}

	out := make([]api.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toAPIEvent(e))
	}
	return &api.ListEventsResponse{Events: out}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func toAPIProfile(p models.Profile) api.Profile {
	return api.Profile{
		Identity:     p.Identity,
		Username:     p.Username,
		Email:        p.Email,
		PublicKey:    p.PublicKey,
		RegisteredAt: p.RegisteredAt,
		LastLogin:    p.LastLogin,
		IsActive:     p.IsActive,
	}
}

func toAPIEvent(e models.Event) api.Event {
	return api.Event{
		Seq:       e.Seq,
		ID:        e.ID,
		Kind:      string(e.Kind),
		Identity:  e.Identity,
		Username:  e.Username,
		Email:     e.Email,
		Timestamp: e.Timestamp,
	}
}
