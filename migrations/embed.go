// Package migrations embeds the SQL migration files into the binary so the
// simulator and audit tables can be created without the files on disk.
package migrations

import "embed"

// FS holds every *.sql file in this directory at its root.
//
//go:embed *.sql
var FS embed.FS
