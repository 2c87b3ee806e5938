// Package migrations embeds the versioned SQL schema for the SQL-backed stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
