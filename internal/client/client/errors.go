package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/idregistry/internal/common"
	"github.com/dmitrijs2005/idregistry/internal/identity"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Registry rejections, recognised by the reason the server puts in the
// status message.
var (
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrNotRegistered      = errors.New("user not registered")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrNotAuthorized      = errors.New("not authorized")

	ErrDeactivateForbidden = fmt.Errorf("%w: only owner or user can deactivate account", ErrNotAuthorized)
	ErrNotOwner            = fmt.Errorf("%w: caller is not the owner", ErrNotAuthorized)
)

// knownErrors maps status messages to client sentinels.
var knownErrors = func() map[string]error {
	m := make(map[string]error)
	for _, err := range []error{
		ErrAlreadyRegistered,
		ErrNotRegistered,
		ErrEmptyUsername,
		ErrEmptyEmail,
		ErrUsernameTaken,
		ErrEmailTaken,
		ErrAccountDeactivated,
		ErrNotAuthorized,
		ErrDeactivateForbidden,
		ErrNotOwner,
		identity.ErrEmpty,
		identity.ErrInvalid,
		common.ErrorNotFound,
	} {
		m[err.Error()] = err
	}
	return m
}()
