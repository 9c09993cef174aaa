// Package models holds the records owned by the registry.
package models

import "time"

// Profile is the directory record of one identity. LastLogin is the zero
// time until the first login.
type Profile struct {
	Identity     string    `json:"identity"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PublicKey    string    `json:"public_key"`
	RegisteredAt time.Time `json:"registered_at"`
	LastLogin    time.Time `json:"last_login,omitzero"`
	IsActive     bool      `json:"is_active"`
}

// HasLoggedIn reports whether LastLogin has been set.
func (p Profile) HasLoggedIn() bool {
	return !p.LastLogin.IsZero()
}
