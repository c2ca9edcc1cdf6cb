// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
)

// vehicleService is the concrete implementation of [VehicleService].
//
// Image attachment ordering is asymmetric on purpose: Create uploads first
// and writes the row last so a failed insert can only leak hosted files
// (logged), never reference files that do not exist; Update and Delete write
// the row first so cleanup only runs against images the row no longer
// references.
type vehicleService struct {
	vehicles store.VehicleRepository
	images   adapter.ImageStore
	cleanup  CleanupQueue

	maxFiles     int
	maxFileBytes int64

	logger *logger.Logger
}

// NewVehicleService constructs a [VehicleService] wired to the given
// repository, image host adapter and cleanup queue, with upload ceilings
// taken from cfg.
func NewVehicleService(vehicles store.VehicleRepository, images adapter.ImageStore, cleanup CleanupQueue, cfg config.Uploads, logger *logger.Logger) VehicleService {
	return &vehicleService{
		vehicles:     vehicles,
		images:       images,
		cleanup:      cleanup,
		maxFiles:     cfg.MaxFiles,
		maxFileBytes: cfg.MaxFileBytes,
		logger:       logger,
	}
}

// Create validates the input, uploads every file in order, appends the
// external URLs, and inserts the row as the final step.
//
// Failure handling:
//   - upload N fails → uploads 1..N-1 are deleted synchronously before the
//     error is returned; nothing is persisted.
//   - row insert fails → the uploaded images are already on the host; their
//     handles are logged for operator attention and deliberately NOT
//     deleted, since the insert failure may be transient and the admin will
//     retry.
func (s *vehicleService) Create(ctx context.Context, input VehicleInput, files []UploadFile, externalURLs []string) (int64, error) {
	log := logger.FromContext(ctx)

	var verrs ValidationErrors
	validateFiles(files, s.maxFiles, s.maxFileBytes, &verrs)
	validateExternalURLs(externalURLs, &verrs)
	if !verrs.empty() {
		return 0, &verrs
	}

	images, err := s.uploadAll(ctx, files)
	if err != nil {
		return 0, err
	}
	for _, u := range externalURLs {
		images = append(images, models.ImageRef{URL: u})
	}

	vehicle := vehicleFromInput(input)
	vehicle.Images = images

	created, err := s.vehicles.CreateVehicle(ctx, vehicle)
	if err != nil {
		log.Err(err).
			Str("func", "*vehicleService.Create").
			Strs("orphaned_handles", vehicle.DeletionHandles()).
			Msg("error: vehicle insert failed after upload; hosted images orphaned")
		return 0, fmt.Errorf("creating vehicle: %w", err)
	}

	return created.ID, nil
}

// Update replaces the descriptive fields of the vehicle identified by id.
//
// The image list is replaced wholesale when files or external URLs are
// supplied; otherwise the stored list is preserved untouched. The row is
// written first, then every handle the old list held and the new one does
// not is queued for background deletion.
func (s *vehicleService) Update(ctx context.Context, id int64, input VehicleInput, files []UploadFile, externalURLs []string) error {
	log := logger.FromContext(ctx)

	existing, err := s.vehicles.GetVehicle(ctx, id)
	if err != nil {
		return err
	}

	var verrs ValidationErrors
	validateFiles(files, s.maxFiles, s.maxFileBytes, &verrs)
	validateExternalURLs(externalURLs, &verrs)
	if !verrs.empty() {
		return &verrs
	}

	imagesTouched := len(files) > 0 || len(externalURLs) > 0

	images := existing.Images
	if imagesTouched {
		images, err = s.uploadAll(ctx, files)
		if err != nil {
			return err
		}
		for _, u := range externalURLs {
			images = append(images, models.ImageRef{URL: u})
		}
	}

	vehicle := vehicleFromInput(input)
	vehicle.ID = id
	vehicle.Images = images
	vehicle.CreatedAt = existing.CreatedAt

	if err := s.vehicles.UpdateVehicle(ctx, vehicle); err != nil {
		if imagesTouched {
			log.Err(err).
				Str("func", "*vehicleService.Update").
				Int64("id", id).
				Strs("orphaned_handles", vehicle.DeletionHandles()).
				Msg("error: vehicle update failed after upload; hosted images orphaned")
		}
		return err
	}

	if imagesTouched {
		if stale := staleHandles(existing.Images, images); len(stale) > 0 {
			s.cleanup.Enqueue(stale...)
		}
	}

	return nil
}

// Delete removes the vehicle row first, then queues its hosted images for
// best-effort removal.
func (s *vehicleService) Delete(ctx context.Context, id int64) error {
	existing, err := s.vehicles.GetVehicle(ctx, id)
	if err != nil {
		return err
	}

	if err := s.vehicles.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	if handles := existing.DeletionHandles(); len(handles) > 0 {
		s.cleanup.Enqueue(handles...)
	}

	return nil
}

func (s *vehicleService) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	return s.vehicles.GetVehicle(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error) {
	return s.vehicles.ListVehicles(ctx, filter)
}

// uploadAll sends every file to the image host in input order. If one upload
// fails, the ones that already succeeded are deleted synchronously so a
// partial batch never escapes this function.
func (s *vehicleService) uploadAll(ctx context.Context, files []UploadFile) ([]models.ImageRef, error) {
	log := logger.FromContext(ctx)

	uploaded := make([]models.ImageRef, 0, len(files))
	for _, file := range files {
		ref, err := s.images.Upload(ctx, file.Data, file.Filename)
		if err != nil {
			handles := make([]string, 0, len(uploaded))
			for _, u := range uploaded {
				handles = append(handles, u.DeletionHandle)
			}
			if rollbackErr := s.images.DeleteMany(ctx, handles); rollbackErr != nil {
				log.Err(rollbackErr).
					Str("func", "*vehicleService.uploadAll").
					Msg("error: rolling back partial upload batch")
			}
			return nil, fmt.Errorf("uploading %q: %w", file.Filename, err)
		}
		uploaded = append(uploaded, ref)
	}

	return uploaded, nil
}

// staleHandles returns the deletion handles present in old but absent from
// new. External URLs carry no handle and are never returned.
func staleHandles(previous, current []models.ImageRef) []string {
	kept := make(map[string]struct{}, len(current))
	for _, ref := range current {
		if ref.DeletionHandle != "" {
			kept[ref.DeletionHandle] = struct{}{}
		}
	}

	var stale []string
	for _, ref := range previous {
		if ref.DeletionHandle == "" {
			continue
		}
		if _, ok := kept[ref.DeletionHandle]; !ok {
			stale = append(stale, ref.DeletionHandle)
		}
	}
	return stale
}

func vehicleFromInput(input VehicleInput) models.Vehicle {
	return models.Vehicle{
		Year:          input.Year,
		Make:          input.Make,
		Model:         input.Model,
		Trim:          input.Trim,
		Price:         input.Price,
		Mileage:       input.Mileage,
		ExteriorColor: input.ExteriorColor,
		InteriorColor: input.InteriorColor,
		FuelType:      input.FuelType,
		Transmission:  input.Transmission,
		Engine:        input.Engine,
		Drivetrain:    input.Drivetrain,
		Description:   input.Description,
		Status:        input.Status,
	}
}
