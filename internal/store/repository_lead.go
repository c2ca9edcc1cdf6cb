package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/models"
)

// leadRepository is the SQL-backed implementation of [LeadRepository].
type leadRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLeadRepository constructs a [LeadRepository] backed by the provided
// database connection and logger.
func NewLeadRepository(db *DB, logger *logger.Logger) LeadRepository {
	logger.Debug().Msg("creating lead repository")
	return &leadRepository{
		db:     db,
		logger: logger,
	}
}

// CreateLead persists one contact submission and returns it with the
// server-assigned ID. VehicleID of zero is stored as NULL.
func (r *leadRepository) CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	log := logger.FromContext(ctx)

	lead.CreatedAt = time.Now().UTC()

	var vehicleID any
	if lead.VehicleID > 0 {
		vehicleID = lead.VehicleID
	}

	row := r.db.QueryRowContext(ctx, createLead,
		lead.Name, lead.Phone, lead.Message, vehicleID, lead.VehicleTitle, lead.IP, lead.UserAgent, lead.CreatedAt,
	)

	if err := row.Scan(&lead.ID); err != nil {
		log.Err(err).Str("func", "*leadRepository.CreateLead").Msg("error: scanning error")
		return models.Lead{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return lead, nil
}

// ListLeads returns every lead, newest first. The returned slice is never nil.
func (r *leadRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listLeads)
	if err != nil {
		log.Err(err).Str("func", "*leadRepository.ListLeads").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		var lead models.Lead
		var vehicleID sql.NullInt64

		err := rows.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Message,
			&vehicleID, &lead.VehicleTitle, &lead.IP, &lead.UserAgent, &lead.CreatedAt)
		if err != nil {
			log.Err(err).Str("func", "*leadRepository.ListLeads").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if vehicleID.Valid {
			lead.VehicleID = vehicleID.Int64
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return leads, nil
}

// DeleteLead removes one lead row or returns [ErrLeadNotFound].
func (r *leadRepository) DeleteLead(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteLead, id)
	if err != nil {
		log.Err(err).Str("func", "*leadRepository.DeleteLead").Int64("id", id).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrLeadNotFound
	}

	return nil
}
