// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for the remote image-hosting
// service that stores listing photos.
//
// The primary abstraction is [ImageStore], which decouples the mutation
// service from the hosting provider's HTTP API. The package ships one
// implementation ([NewHTTPImageStore]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for provider-agnostic
// error handling (e.g. [ErrUploadFailed] for a rejected upload).
package adapter

import (
	"context"

	"github.com/MKhiriev/autolot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/image_store_mock.go -package=mock

// ImageStore defines communication with the remote image host. Implementations
// are responsible for request encoding, authentication, and mapping
// transport-level errors to the sentinel values defined in this package.
type ImageStore interface {
	// Upload sends one image to the host and returns its public URL together
	// with the opaque deletion handle the host issued for it. Returns an
	// error wrapping [ErrUploadFailed] if the host rejects the image or the
	// request fails.
	Upload(ctx context.Context, data []byte, filename string) (models.ImageRef, error)

	// Delete destroys one previously uploaded image by its deletion handle.
	// Callers treat failures as log-only: a leaked image on the host is
	// preferable to blocking a vehicle mutation.
	Delete(ctx context.Context, handle string) error

	// DeleteMany deletes the given handles one by one. A failure on one
	// handle never aborts the rest; the first error encountered is returned
	// after all handles have been attempted.
	DeleteMany(ctx context.Context, handles []string) error
}
