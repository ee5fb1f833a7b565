// Package migrations embeds the audit log schema so the server binary runs
// without the SQL files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
