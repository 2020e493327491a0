package migrations

import "embed"

// FS contains the embedded deck schema migrations shared by the SQLite and
// PostgreSQL stores.
//
//go:embed *.sql
var FS embed.FS
