package migrations

import "embed"

// FS contains embedded SQLite migrations for accordion storage.
//
//go:embed *.sql
var FS embed.FS
