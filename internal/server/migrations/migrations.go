// Package migrations embeds the registry schema. The SQL is kept portable
// between PostgreSQL and SQLite: timestamps are unix microseconds and event
// sequence numbers are assigned by the application.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
