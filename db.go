package taskdeck

import "embed"

type Database interface {
	Close() error
	Migrate(embed.FS) error
}

//go:embed migrations/*.sql
var Migrations embed.FS
