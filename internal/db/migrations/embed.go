// Package migrations embeds the SQL migrations for each slot backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var all embed.FS

// Postgres returns the migrations for the PostgreSQL slot table.
func Postgres() fs.FS { return sub("postgres") }

// SQLite returns the migrations for the SQLite slot table.
func SQLite() fs.FS { return sub("sqlite") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(all, dir)
	if err != nil {
		// Only reachable if the embed pattern above is changed.
		panic(err)
	}

	return f
}
