// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the persistence layer of the autolot application:
// the database connection, schema migration hook, and the vehicle, lead and
// session repositories.
//
// Two backends are supported, selected by the DSN: PostgreSQL through the pgx
// stdlib driver and SQLite through mattn/go-sqlite3 (the default for a
// single-instance deployment, matching the one-writer assumption of the rest
// of the system). Both accept $N placeholders, so all queries are shared.
package store

import (
	"database/sql"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/migrations"
)

type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Migrate applies all pending schema migrations for the connected backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
