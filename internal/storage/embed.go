package storage

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationsFS returns the embedded migrations as a root-level filesystem,
// so migration files resolve by bare name (001_init.sql, ...).
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// The migrations directory is compiled into the binary; a failure
		// here means a broken build, not a runtime condition.
		panic(err)
	}
	return sub
}
