// Package migrations embeds the schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed *.sql
var files embed.FS

// Result reports the schema version before and after Up.
type Result struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// Up applies every pending migration to db.
func Up(db *sql.DB) (*Result, error) {
	source, err := iofs.New(files, ".")
	if err != nil {
		return nil, errors.Wrap(err, "iofs.New")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "postgres.WithInstance")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "migrate.NewWithInstance")
	}

	result := &Result{}
	result.PreMigrationVersion, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, errors.Wrap(err, "m.Version.preMigrationVersion")
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, errors.Wrap(err, "m.Up")
	}

	result.PostMigrationVersion, _, err = m.Version()
	if err != nil {
		return nil, errors.Wrap(err, "m.Version.postMigrationVersion")
	}

	return result, nil
}
