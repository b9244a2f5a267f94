package migrations

import "embed"

// FS contains embedded SQLite migrations for storage areas.
//
//go:embed *.sql
var FS embed.FS
