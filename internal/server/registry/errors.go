package registry

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrNotRegistered      = errors.New("user not registered")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrNotAuthorized      = errors.New("not authorized")

	// Both wrap ErrNotAuthorized and only differ in the reason they carry.
	ErrDeactivateForbidden = fmt.Errorf("%w: only owner or user can deactivate account", ErrNotAuthorized)
	ErrNotOwner            = fmt.Errorf("%w: caller is not the owner", ErrNotAuthorized)

	ErrCorruptSnapshot = errors.New("corrupt registry snapshot")
)
