// Package sqlite implements taskdeck's Database and repository interfaces
package sqlite

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"

	"github.com/pmarins/taskdeck"
)

type database struct {
	conn *sql.DB
}

var _ taskdeck.Database = (*database)(nil)

func Open(url string) (*database, error) {
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	// one open handle for the process lifetime
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &database{
		conn: conn,
	}, nil
}

func (db *database) DB() *sql.DB {
	return db.conn
}

func (db *database) Migrate(migrations embed.FS) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (db *database) Close() error {
	return db.conn.Close()
}
