package store

import (
	"context"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
)

// Storages bundles every repository over one shared database connection.
type Storages struct {
	VehicleRepository VehicleRepository
	LeadRepository    LeadRepository
	SessionRepository SessionRepository

	db *DB
}

// NewStorages connects to the database selected by cfg, applies pending
// migrations, and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		VehicleRepository: NewVehicleRepository(db, log),
		LeadRepository:    NewLeadRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		db:                db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
