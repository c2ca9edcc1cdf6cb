package store

import (
	"context"
	"time"

	"github.com/MKhiriev/autolot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VehicleFilter narrows ListVehicles results. The zero value lists everything.
type VehicleFilter struct {
	// Status filters by exact status when non-empty.
	Status string
}

// VehicleRepository is the data-access contract for the vehicles table.
//
// Every write is a single parameterised statement: the application layer
// performs image uploads outside the database, so one statement is the whole
// transactional boundary per the concurrency model.
type VehicleRepository interface {
	// CreateVehicle persists a new vehicle row and returns it with
	// server-assigned fields (ID, CreatedAt, UpdatedAt) populated.
	CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)

	// GetVehicle returns the vehicle with the given ID or ErrVehicleNotFound.
	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)

	// ListVehicles returns vehicles matching filter, newest first.
	// The result is never nil.
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error)

	// UpdateVehicle rewrites every descriptive field and the image list of
	// the row identified by vehicle.ID, refreshing updated_at.
	// Returns ErrVehicleNotFound if the row does not exist.
	UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error

	// DeleteVehicle removes the row or returns ErrVehicleNotFound.
	DeleteVehicle(ctx context.Context, id int64) error
}

// LeadRepository is the data-access contract for the leads table.
// Leads are insert-then-delete only; there is no update path.
type LeadRepository interface {
	CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
}

// SessionRepository is the data-access contract for the sessions table.
type SessionRepository interface {
	// CreateSession persists a freshly issued session row.
	CreateSession(ctx context.Context, session models.Session) error

	// FindSessionByTokenHash returns the session matching the cookie token's
	// hash or ErrSessionNotFound.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)

	// TouchSession refreshes the rolling expiry of the given session.
	TouchSession(ctx context.Context, id string, lastSeenAt, expiresAt time.Time) error

	// DeleteSession destroys the session row (logout).
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes every session whose deadline is before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
