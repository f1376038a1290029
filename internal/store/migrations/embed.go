// Package migrations embeds the goose SQL migrations for the SQLite-backed
// collection store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
