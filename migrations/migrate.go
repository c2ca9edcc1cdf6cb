// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations applies the embedded goose migrations for the autolot
// database schema (vehicles, leads, sessions).
//
// Both supported backends ship their own SQL directory because the
// auto-increment and timestamp syntax differ between SQLite and PostgreSQL.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Dialects accepted by Migrate. They match the driver names used by
// store.NewConnect.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "pgx"
)

// Migrate runs all pending migrations for the given dialect against db.
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	var dir string
	switch dialect {
	case DialectSQLite:
		dir = "sqlite"
	case DialectPostgres:
		dir = "postgres"
	default:
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
