// Package assets embeds the fallback dictionary and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.txt
var Words string

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the *.sql migration files rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// fs.Sub only fails on an invalid path, which is a build-time constant here.
		panic(err)
	}
	return sub
}
