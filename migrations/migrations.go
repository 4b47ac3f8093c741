// Package migrations embeds the versioned schema files applied at startup.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
