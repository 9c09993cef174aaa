package grpc

import (
	"errors"

	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/dmitrijs2005/idregistry/internal/identity"
	"github.com/dmitrijs2005/idregistry/internal/server/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps registry errors to gRPC status codes. The message is the
// reason string clients match on.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, registry.ErrAlreadyRegistered),
		errors.Is(err, registry.ErrUsernameTaken),
		errors.Is(err, registry.ErrEmailTaken):
		code = codes.AlreadyExists
	case errors.Is(err, registry.ErrEmptyUsername),
		errors.Is(err, registry.ErrEmptyEmail),
		errors.Is(err, identity.ErrEmpty),
		errors.Is(err, identity.ErrInvalid):
		code = codes.InvalidArgument
	case errors.Is(err, registry.ErrNotRegistered),
		errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, registry.ErrAccountDeactivated):
		code = codes.FailedPrecondition
	case errors.Is(err, registry.ErrNotAuthorized):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		code = codes.Unauthenticated
	}

	if code == codes.Internal {
		return status.Error(code, common.ErrorInternal.Error())
	}
	return status.Error(code, err.Error())
}
