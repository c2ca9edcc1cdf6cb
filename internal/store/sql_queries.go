// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createVehicle = `INSERT INTO vehicles (
			year, make, model, trim, price, mileage,
			exterior_color, interior_color, fuel_type, transmission, engine, drivetrain,
			description, status, images, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id;`

	getVehicle = `SELECT
			id, year, make, model, trim, price, mileage,
			exterior_color, interior_color, fuel_type, transmission, engine, drivetrain,
			description, status, images, created_at, updated_at
		FROM vehicles
		WHERE id = $1;`

	updateVehicle = `UPDATE vehicles SET
			year = $1, make = $2, model = $3, trim = $4, price = $5, mileage = $6,
			exterior_color = $7, interior_color = $8, fuel_type = $9,
			transmission = $10, engine = $11, drivetrain = $12,
			description = $13, status = $14, images = $15, updated_at = $16
		WHERE id = $17;`

	deleteVehicle = `DELETE FROM vehicles WHERE id = $1;`

	createLead = `INSERT INTO leads (name, phone, message, vehicle_id, vehicle_title, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;`

	listLeads = `SELECT id, name, phone, message, vehicle_id, vehicle_title, ip, user_agent, created_at
		FROM leads
		ORDER BY created_at DESC;`

	deleteLead = `DELETE FROM leads WHERE id = $1;`

	createSession = `INSERT INTO sessions (id, token_hash, created_at, last_seen_at, expires_at)
		VALUES ($1, $2, $3, $4, $5);`

	findSessionByTokenHash = `SELECT id, token_hash, created_at, last_seen_at, expires_at
		FROM sessions
		WHERE token_hash = $1;`

	touchSession = `UPDATE sessions SET last_seen_at = $1, expires_at = $2 WHERE id = $3;`

	deleteSession = `DELETE FROM sessions WHERE id = $1;`

	deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at < $1;`
)

// vehicleColumns is the canonical column order shared by every vehicle SELECT.
var vehicleColumns = []string{
	"id", "year", "make", "model", "trim", "price", "mileage",
	"exterior_color", "interior_color", "fuel_type", "transmission", "engine", "drivetrain",
	"description", "status", "images", "created_at", "updated_at",
}

// buildListVehiclesQuery builds the inventory SELECT for the given filter.
// Both supported drivers accept $N placeholders, so the builder always uses
// the dollar format.
func buildListVehiclesQuery(filter VehicleFilter) (string, []any, error) {
	builder := sq.
		Select(vehicleColumns...).
		From("vehicles").
		OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	return builder.ToSql()
}
