// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"strconv"
	"strings"
)

// Casing classifies the field-name convention of the rows the read API
// currently serves.
type Casing int

const (
	CasingUnknown Casing = iota
	CasingSnake
	CasingCamel
)

// ImageFieldKind classifies how the read API represents a row's images.
type ImageFieldKind int

const (
	ImageFieldNone ImageFieldKind = iota

	// ImageFieldJSONString is a string column holding a JSON-encoded list.
	ImageFieldJSONString

	// ImageFieldArray is a bare array column.
	ImageFieldArray

	// ImageFieldSingleURL is a scalar column holding one URL.
	ImageFieldSingleURL
)

// SchemaProfile captures the row shape detected from a sample row. A zero
// profile means no read has happened yet; payload building then includes
// every field under its canonical snake_case name.
type SchemaProfile struct {
	Casing     Casing
	ImageField ImageFieldKind

	// ImageKey is the row key the image representation was found under.
	// Empty when ImageField is ImageFieldNone.
	ImageKey string

	keys map[string]struct{}
}

// Unknown reports whether no row shape has been detected yet.
func (p SchemaProfile) Unknown() bool {
	return p.Casing == CasingUnknown && len(p.keys) == 0
}

// HasKey reports whether the sampled row carried the exact key.
func (p SchemaProfile) HasKey(key string) bool {
	_, ok := p.keys[key]
	return ok
}

// FieldKey maps a canonical snake_case field name to the key the detected
// schema expects.
func (p SchemaProfile) FieldKey(snake string) string {
	if p.Casing == CasingCamel {
		return snakeToCamel(snake)
	}
	return snake
}

// multiImageKeys are probed, in order, for list-shaped image columns.
var multiImageKeys = []string{"images", "image_urls", "imageUrls"}

// singleImageKeys are probed, in order, for scalar single-URL columns.
var singleImageKeys = []string{"image_url", "imageUrl", "image"}

// DetectSchema classifies the row shape of a sample row. Casing is decided
// by sentinel color keys; the image representation is probed in priority
// order: JSON-string column, bare array column, single-URL column.
func DetectSchema(row VehicleRow) SchemaProfile {
	profile := SchemaProfile{keys: make(map[string]struct{}, len(row))}
	for key := range row {
		profile.keys[key] = struct{}{}
	}

	switch {
	case profile.HasKey("exterior_color"):
		profile.Casing = CasingSnake
	case profile.HasKey("exteriorColor"):
		profile.Casing = CasingCamel
	}

	for _, key := range multiImageKeys {
		switch row[key].(type) {
		case string:
			profile.ImageField = ImageFieldJSONString
			profile.ImageKey = key
			return profile
		case []any, []string:
			profile.ImageField = ImageFieldArray
			profile.ImageKey = key
			return profile
		}
	}

	for _, key := range singleImageKeys {
		if _, ok := row[key].(string); ok {
			profile.ImageField = ImageFieldSingleURL
			profile.ImageKey = key
			return profile
		}
	}

	return profile
}

func snakeToCamel(snake string) string {
	parts := strings.Split(snake, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

// VehicleRow is one raw inventory row as served by the read API. Rows stay
// untyped so schema detection and normalization can inspect whatever shape
// the server produced.
type VehicleRow map[string]any

// ID returns the row identifier, tolerating both number and string
// encodings. Zero when absent.
func (r VehicleRow) ID() int64 {
	switch v := r["id"].(type) {
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

// String returns the value of the canonical snake_case field, checking the
// camelCase counterpart when the snake key is absent.
func (r VehicleRow) String(snake string) string {
	if s, ok := r[snake].(string); ok {
		return s
	}
	if s, ok := r[snakeToCamel(snake)].(string); ok {
		return s
	}
	return ""
}

// Int64 returns the numeric value of the canonical snake_case field,
// checking the camelCase counterpart when the snake key is absent.
func (r VehicleRow) Int64(snake string) int64 {
	for _, key := range []string{snake, snakeToCamel(snake)} {
		switch v := r[key].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

// RawImages returns the row's image representation under the detected key,
// falling back to the default probe order when the profile carries none.
func (r VehicleRow) RawImages(profile SchemaProfile) any {
	if profile.ImageKey != "" {
		return r[profile.ImageKey]
	}
	for _, key := range append(multiImageKeys, singleImageKeys...) {
		if v, ok := r[key]; ok {
			return v
		}
	}
	return nil
}
