// Package client is the CLI's connection to the registry server.
//
// GRPCClient wraps the generated-style api.RegistryClient: it owns the
// connection, attaches the access token to every call through a unary
// interceptor, and maps gRPC statuses back to the registry's sentinel
// errors so callers can use errors.Is. Transport failures surface as
// ErrUnavailable, rejected tokens as ErrUnauthorized.
package client
