package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// The users/assets/audit_log schema ships inside the binary so a deploy is a
// single artifact. New migrations go in migrations/ as NNNN_name.{up,down}.sql
// pairs; applied versions are tracked by golang-migrate in schema_migrations.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// Run brings the database schema up to the latest embedded version. A database
// that is already current is a no-op, so it is safe to call on every startup.
func Run(databaseURL string) error {
	src, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("open migration target: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
