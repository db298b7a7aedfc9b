// Package migrations holds the numbered schema files applied by sqlite.Store.
// Files are named NNN_description.up.sql / .down.sql and applied in order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
