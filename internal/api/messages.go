// Package api is the wire contract of the registry gRPC service. Messages
// are plain structs carried by the JSON codec registered in codec.go; the
// service descriptor in service.go is written by hand in the shape
// protoc-gen-go-grpc would produce.
package api

import "time"

type Profile struct {
	Identity     string    `json:"identity"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PublicKey    string    `json:"public_key,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	LastLogin    time.Time `json:"last_login,omitzero"`
	IsActive     bool      `json:"is_active"`
}

type Event struct {
	Seq       int64     `json:"seq"`
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Identity  string    `json:"identity"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Register, Login and UpdateProfile act on the identity carried by the
// access token.

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	PublicKey string `json:"public_key,omitempty"`
}

type RegisterResponse struct {
	Profile Profile `json:"profile"`
}

type LoginRequest struct{}

type LoginResponse struct {
	LastLogin time.Time `json:"last_login"`
}

// UpdateProfileRequest fields left empty keep their current value.
type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

type UpdateProfileResponse struct {
	Profile Profile `json:"profile"`
}

// DeactivateRequest targets Identity, or the caller when it is empty.
type DeactivateRequest struct {
	Identity string `json:"identity,omitempty"`
}

type DeactivateResponse struct{}

type ReactivateRequest struct {
	Identity string `json:"identity"`
}

type ReactivateResponse struct{}

type IdentityRequest struct {
	Identity string `json:"identity"`
}

type IsRegisteredResponse struct {
	Registered bool `json:"registered"`
}

type IsActiveResponse struct {
	Active bool `json:"active"`
}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type ListEventsRequest struct {
	Since int64 `json:"since"`
	Limit int32 `json:"limit"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
