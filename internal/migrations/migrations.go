// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package migrations applies the event log and snapshot store schema via
// golang-migrate rather than hand-rolled CREATE TABLE IF NOT EXISTS
// calls. Both backends share one migration source tree, split per dialect
// under sql/sqlite and sql/postgres.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var sqlFiles embed.FS

// Run applies every pending sqlite migration to db. It is idempotent:
// calling it against an already-migrated database is a no-op.
func Run(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	return up(driver, "sql/sqlite", "sqlite3")
}

// RunPostgres applies every pending postgres migration to db, with the
// same idempotency guarantee as Run.
func RunPostgres(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	return up(driver, "sql/postgres", "postgres")
}

func up(driver database.Driver, dir, databaseName string) error {
	src, err := iofs.New(sqlFiles, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, databaseName, driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
