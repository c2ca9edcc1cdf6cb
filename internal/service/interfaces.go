// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the application logic of autolot: vehicle
// mutations with their image-attachment lifecycle, public lead intake, and
// admin authentication with CSRF protection.
//
// Services validate input and orchestrate the store, the image host adapter
// and the background cleanup worker; they never touch the transport layer.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UploadFile is one image file received from a multipart mutation request.
type UploadFile struct {
	Filename string
	Data     []byte
}

// VehicleInput carries the descriptive fields of a vehicle mutation after
// form decoding. Pointer-free: absent optional fields arrive as zero values
// and are written as such (full-record replace semantics).
type VehicleInput struct {
	Year          int
	Make          string
	Model         string
	Trim          string
	Price         int64
	Mileage       int64
	ExteriorColor string
	InteriorColor string
	FuelType      string
	Transmission  string
	Engine        string
	Drivetrain    string
	Description   string
	Status        string
}

// VehicleService orchestrates vehicle CRUD together with the image
// attachment lifecycle.
type VehicleService interface {
	// Create validates input, uploads files in order (rolling back already
	// uploaded files if one fails), appends external URLs, and inserts the
	// row last. Returns the new vehicle's ID.
	Create(ctx context.Context, input VehicleInput, files []UploadFile, externalURLs []string) (int64, error)

	// Update replaces the descriptive fields of an existing vehicle. When
	// files or external URLs are supplied the image list is replaced
	// wholesale and the no-longer-referenced uploads are cleaned up in the
	// background; when neither is supplied the stored list is preserved.
	Update(ctx context.Context, id int64, input VehicleInput, files []UploadFile, externalURLs []string) error

	// Delete removes the vehicle row, then schedules best-effort deletion of
	// its hosted images.
	Delete(ctx context.Context, id int64) error

	Get(ctx context.Context, id int64) (models.Vehicle, error)
	List(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error)
}

// LeadInput is one public contact-form submission.
type LeadInput struct {
	Name      string
	Phone     string
	Message   string
	VehicleID int64

	// Honeypot is the hidden form field no human fills in. Non-empty means
	// the submission is silently dropped.
	Honeypot string

	IP        string
	UserAgent string
}

// LeadService handles public contact submissions and the admin lead inbox.
type LeadService interface {
	// CreateLead validates and stores one submission, denormalizing the
	// vehicle title when a vehicle reference is given, then fires the email
	// notification in the background. A tripped honeypot returns a zero
	// lead and no error.
	CreateLead(ctx context.Context, input LeadInput) (models.Lead, error)

	ListLeads(ctx context.Context) ([]models.Lead, error)
	DeleteLead(ctx context.Context, id int64) error
}

// LoginResult is everything a successful admin login produces.
type LoginResult struct {
	Session models.Session

	// Token is the opaque session cookie value. Only its hash is stored.
	Token string

	CSRFToken     string
	CSRFExpiresAt time.Time
}

// AuthService implements the single-admin session and CSRF lifecycle.
type AuthService interface {
	// Login checks the failed-attempt limiter first, verifies the password
	// in constant time, and on success issues a fresh session with a fresh
	// opaque token and a CSRF token bound to it.
	Login(ctx context.Context, password, ip string) (LoginResult, error)

	// Authenticate resolves the session cookie token to a live session and
	// refreshes its rolling expiry. Expired or unknown tokens return
	// ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (models.Session, error)

	// Logout destroys the session row. Idempotent.
	Logout(ctx context.Context, sessionID string) error

	// IssueCSRFToken mints a new CSRF token bound to the given session.
	IssueCSRFToken(sessionID string) (string, time.Time, error)

	// VerifyCSRFToken checks signature, expiry and session binding.
	// Returns ErrCSRFInvalid on any failure.
	VerifyCSRFToken(token, sessionID string) error
}

// LeadNotifier delivers a new-lead notification to the dealership inbox.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead models.Lead) error
}

// CleanupQueue accepts deletion handles for background best-effort removal
// from the image host. Implemented by the workers package.
type CleanupQueue interface {
	Enqueue(handles ...string)
}
