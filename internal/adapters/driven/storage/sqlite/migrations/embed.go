// Package migrations embeds the schema migration files for the chunk
// store.
package migrations

import "embed"

// FS holds the SQL migration files, applied in version order.
//
//go:embed *.sql
var FS embed.FS
