// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "sync"

// InventoryFetcher guards the admin inventory view against out-of-order
// list responses. Every fetch is tagged with a monotonically increasing
// sequence number; a completion that is not the most recently issued fetch
// is discarded, so a slow stale response can never overwrite newer data.
// A failed fetch preserves the previously rendered rows.
//
// The fetcher also owns schema detection: the row shape is classified once,
// from the first row of the first successful fetch, and reused for every
// payload built afterwards.
type InventoryFetcher struct {
	mu sync.Mutex

	seq  uint64
	rows []VehicleRow

	profile    SchemaProfile
	profileSet bool
}

// Begin registers a new fetch and returns its sequence tag. Issuing a new
// fetch supersedes every outstanding one.
func (f *InventoryFetcher) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	return f.seq
}

// Latest returns the sequence tag of the most recently issued fetch.
func (f *InventoryFetcher) Latest() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seq
}

// Complete reports a finished fetch. It returns true only when the result
// was applied: a stale sequence tag or a fetch error leaves the current
// rows untouched and returns false.
func (f *InventoryFetcher) Complete(seq uint64, rows []VehicleRow, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq || err != nil {
		return false
	}

	f.rows = rows
	if !f.profileSet && len(rows) > 0 {
		f.profile = DetectSchema(rows[0])
		f.profileSet = true
	}

	return true
}

// Rows returns the currently applied inventory rows.
func (f *InventoryFetcher) Rows() []VehicleRow {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]VehicleRow, len(f.rows))
	copy(rows, f.rows)
	return rows
}

// Profile returns the detected schema profile. The zero profile is returned
// until the first successful fetch delivers at least one row; payloads built
// before that include every field.
func (f *InventoryFetcher) Profile() SchemaProfile {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.profile
}
