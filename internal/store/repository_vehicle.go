package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/models"
	"github.com/jackc/pgerrcode"
)

// vehicleRepository is the SQL-backed implementation of [VehicleRepository].
// It owns the on-disk representation of the image list: a JSON text column
// that is always a valid array, never NULL.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type vehicleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVehicleRepository constructs a [VehicleRepository] backed by the provided
// database connection and logger.
func NewVehicleRepository(db *DB, logger *logger.Logger) VehicleRepository {
	logger.Debug().Msg("creating vehicle repository")
	return &vehicleRepository{
		db:     db,
		logger: logger,
	}
}

// CreateVehicle persists a new vehicle row and returns the fully populated
// [models.Vehicle] with the server-assigned ID.
//
// Timestamps are assigned here rather than by column defaults so that the
// returned value matches the stored row without a second round trip.
func (r *vehicleRepository) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	log := logger.FromContext(ctx)

	imagesJSON, err := marshalImages(vehicle.Images)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.CreateVehicle").Msg("error: images encoding error")
		return models.Vehicle{}, err
	}

	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, createVehicle,
		vehicle.Year, vehicle.Make, vehicle.Model, vehicle.Trim, vehicle.Price, vehicle.Mileage,
		vehicle.ExteriorColor, vehicle.InteriorColor, vehicle.FuelType, vehicle.Transmission, vehicle.Engine, vehicle.Drivetrain,
		vehicle.Description, vehicle.Status, imagesJSON, vehicle.CreatedAt, vehicle.UpdatedAt,
	)

	if err := row.Scan(&vehicle.ID); err != nil {
		log.Err(err).Str("func", "*vehicleRepository.CreateVehicle").Msg("error: scanning error")

		switch postgresError(err) {
		case pgerrcode.CheckViolation, pgerrcode.IntegrityConstraintViolation:
			return models.Vehicle{}, ErrConstraintViolation
		default:
			return models.Vehicle{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if vehicle.Images == nil {
		vehicle.Images = []models.ImageRef{}
	}

	return vehicle, nil
}

// GetVehicle retrieves one vehicle row by ID.
//
// Error handling:
//   - sql.ErrNoRows → [ErrVehicleNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *vehicleRepository) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getVehicle, id)

	vehicle, err := scanVehicle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vehicle{}, ErrVehicleNotFound
		}
		log.Err(err).Str("func", "*vehicleRepository.GetVehicle").Int64("id", id).Msg("error: scanning error")
		return models.Vehicle{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return vehicle, nil
}

// ListVehicles returns every vehicle matching filter, newest first.
// The returned slice is never nil.
func (r *vehicleRepository) ListVehicles(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListVehiclesQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.ListVehicles").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.ListVehicles").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	vehicles := make([]models.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "*vehicleRepository.ListVehicles").Msg("error: scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return vehicles, nil
}

// UpdateVehicle rewrites all descriptive fields and the image list of the row
// identified by vehicle.ID in one statement, refreshing updated_at.
//
// Error handling:
//   - zero affected rows → [ErrVehicleNotFound].
//   - Any other driver-level error → wrapped as [ErrExecutingStatement].
func (r *vehicleRepository) UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error {
	log := logger.FromContext(ctx)

	imagesJSON, err := marshalImages(vehicle.Images)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.UpdateVehicle").Msg("error: images encoding error")
		return err
	}

	result, err := r.db.ExecContext(ctx, updateVehicle,
		vehicle.Year, vehicle.Make, vehicle.Model, vehicle.Trim, vehicle.Price, vehicle.Mileage,
		vehicle.ExteriorColor, vehicle.InteriorColor, vehicle.FuelType, vehicle.Transmission, vehicle.Engine, vehicle.Drivetrain,
		vehicle.Description, vehicle.Status, imagesJSON, time.Now().UTC(), vehicle.ID,
	)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.UpdateVehicle").Int64("id", vehicle.ID).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// DeleteVehicle removes one vehicle row.
//
// Error handling mirrors UpdateVehicle: zero affected rows →
// [ErrVehicleNotFound].
func (r *vehicleRepository) DeleteVehicle(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteVehicle, id)
	if err != nil {
		log.Err(err).Str("func", "*vehicleRepository.DeleteVehicle").Int64("id", id).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// scanVehicle scans one vehicle row through the provided scan function,
// decoding the images JSON column into the ordered in-memory list.
func scanVehicle(scan func(dest ...any) error) (models.Vehicle, error) {
	var vehicle models.Vehicle
	var imagesJSON string

	err := scan(
		&vehicle.ID, &vehicle.Year, &vehicle.Make, &vehicle.Model, &vehicle.Trim, &vehicle.Price, &vehicle.Mileage,
		&vehicle.ExteriorColor, &vehicle.InteriorColor, &vehicle.FuelType, &vehicle.Transmission, &vehicle.Engine, &vehicle.Drivetrain,
		&vehicle.Description, &vehicle.Status, &imagesJSON, &vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		return models.Vehicle{}, err
	}

	vehicle.Images, err = unmarshalImages(imagesJSON)
	if err != nil {
		return models.Vehicle{}, err
	}

	return vehicle, nil
}
