// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the shared data structures exchanged between the
// store, service, transport and client layers of the autolot application.
package models

import (
	"strconv"
	"time"
)

// Vehicle statuses. Status is always one of these three values; the store
// and the service layer both enforce the invariant.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusPending   = "pending"
)

// ValidStatus reports whether s is one of the three allowed vehicle statuses.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusSold || s == StatusPending
}

// ImageRef is one entry of a vehicle's ordered image list.
//
// URL is the publicly fetchable display address. DeletionHandle is the opaque
// token returned by the image host for images uploaded through the adapter;
// it is empty for externally supplied URLs, which the system can display but
// never delete remotely.
type ImageRef struct {
	URL            string `json:"url"`
	DeletionHandle string `json:"deletion_handle,omitempty"`
}

// Vehicle represents one inventory listing.
//
// Images is always a valid ordered list (possibly empty), never nil in a
// value returned by the repository. Index 0 is the primary display image.
type Vehicle struct {
	// ID is the store-assigned immutable identifier.
	ID int64 `json:"id"`

	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  string `json:"trim"`

	// Price is in whole currency units (no minor units). Non-negative.
	Price int64 `json:"price"`

	// Mileage is non-negative.
	Mileage int64 `json:"mileage"`

	ExteriorColor string `json:"exterior_color"`
	InteriorColor string `json:"interior_color"`
	FuelType      string `json:"fuel_type"`
	Transmission  string `json:"transmission"`
	Engine        string `json:"engine"`
	Drivetrain    string `json:"drivetrain"`
	Description   string `json:"description"`

	Status string `json:"status"`

	Images []ImageRef `json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Vehicle model.
func (v Vehicle) TableName() string {
	return "vehicles"
}

// Title returns the human-readable listing title, e.g. "2019 Toyota Corolla SE".
// Used for lead denormalization and client display.
func (v Vehicle) Title() string {
	title := ""
	if v.Year > 0 {
		title = strconv.Itoa(v.Year) + " "
	}
	title += v.Make
	if v.Model != "" {
		title += " " + v.Model
	}
	if v.Trim != "" {
		title += " " + v.Trim
	}
	return title
}

// DeletionHandles returns every non-empty deletion handle in the image list,
// preserving order.
func (v Vehicle) DeletionHandles() []string {
	handles := make([]string, 0, len(v.Images))
	for _, img := range v.Images {
		if img.DeletionHandle != "" {
			handles = append(handles, img.DeletionHandle)
		}
	}
	return handles
}
