package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/autolot/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
)

const (
	maxShortTextLen   = 120
	maxDescriptionLen = 20_000
	maxPrice          = 10_000_000
	maxMileage        = 1_000_000
	minYear           = 1900
)

// allowedMIMETypes are the image content types accepted for upload, checked
// by sniffing the file bytes rather than trusting the client's declaration.
var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// vehicleFields is the closed set of form fields a vehicle mutation may
// carry. Anything outside it is rejected before validation starts.
var vehicleFields = map[string]struct{}{
	"year":           {},
	"make":           {},
	"model":          {},
	"trim":           {},
	"price":          {},
	"mileage":        {},
	"exterior_color": {},
	"interior_color": {},
	"fuel_type":      {},
	"transmission":   {},
	"engine":         {},
	"drivetrain":     {},
	"description":    {},
	"status":         {},
}

// stripPolicy removes every HTML element from free-text input, leaving only
// the text content.
var stripPolicy = bluemonday.StrictPolicy()

// ParseVehicleInput decodes a flat form-field map into a [VehicleInput].
// Unknown field names are rejected with [ErrUnknownField]; numeric fields
// that fail to parse are reported through [ValidationErrors] together with
// everything validateVehicleInput finds, so the caller sees one complete
// error list.
func ParseVehicleInput(fields map[string]string) (VehicleInput, error) {
	for name := range fields {
		if _, ok := vehicleFields[name]; !ok {
			return VehicleInput{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	var verrs ValidationErrors
	var input VehicleInput

	input.Year = parseIntField(fields, "year", &verrs)
	input.Price = parseInt64Field(fields, "price", &verrs)
	input.Mileage = parseInt64Field(fields, "mileage", &verrs)

	input.Make = sanitizeText(fields["make"])
	input.Model = sanitizeText(fields["model"])
	input.Trim = sanitizeText(fields["trim"])
	input.ExteriorColor = sanitizeText(fields["exterior_color"])
	input.InteriorColor = sanitizeText(fields["interior_color"])
	input.FuelType = sanitizeText(fields["fuel_type"])
	input.Transmission = sanitizeText(fields["transmission"])
	input.Engine = sanitizeText(fields["engine"])
	input.Drivetrain = sanitizeText(fields["drivetrain"])
	input.Description = sanitizeText(fields["description"])

	input.Status = strings.TrimSpace(fields["status"])
	if input.Status == "" {
		input.Status = models.StatusAvailable
	}

	yearPresent := strings.TrimSpace(fields["year"]) != ""
	validateVehicleInput(input, yearPresent, &verrs)

	if !verrs.empty() {
		return VehicleInput{}, &verrs
	}

	return input, nil
}

func parseIntField(fields map[string]string, name string, verrs *ValidationErrors) int {
	raw, ok := fields[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		verrs.add(name, "must be an integer")
		return 0
	}
	return value
}

func parseInt64Field(fields map[string]string, name string, verrs *ValidationErrors) int64 {
	raw, ok := fields[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return 0
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		verrs.add(name, "must be an integer")
		return 0
	}
	return value
}

// validateVehicleInput checks every bound of input, appending one entry per
// bad field. It never stops at the first problem. Every descriptive field
// may be omitted (updates rewrite the whole record, defaulting omitted
// fields to empty or zero), so bounds apply only to values actually
// supplied; for year that means the check is gated on presence, since its
// zero value sits outside the allowed range.
func validateVehicleInput(input VehicleInput, yearPresent bool, verrs *ValidationErrors) {
	maxYear := time.Now().UTC().Year() + 2
	if yearPresent && (input.Year < minYear || input.Year > maxYear) {
		verrs.add("year", fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}

	if input.Price < 0 || input.Price > maxPrice {
		verrs.add("price", fmt.Sprintf("must be between 0 and %d", maxPrice))
	}
	if input.Mileage < 0 || input.Mileage > maxMileage {
		verrs.add("mileage", fmt.Sprintf("must be between 0 and %d", maxMileage))
	}

	if !models.ValidStatus(input.Status) {
		verrs.add("status", "must be one of: available, sold, pending")
	}

	shortTexts := map[string]string{
		"make":           input.Make,
		"model":          input.Model,
		"trim":           input.Trim,
		"exterior_color": input.ExteriorColor,
		"interior_color": input.InteriorColor,
		"fuel_type":      input.FuelType,
		"transmission":   input.Transmission,
		"engine":         input.Engine,
		"drivetrain":     input.Drivetrain,
	}
	for name, value := range shortTexts {
		if len(value) > maxShortTextLen {
			verrs.add(name, fmt.Sprintf("must be at most %d characters", maxShortTextLen))
		}
	}

	if len(input.Description) > maxDescriptionLen {
		verrs.add("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
}

// validateFiles enforces the configured upload ceilings and sniffs every
// file's real content type.
func validateFiles(files []UploadFile, maxFiles int, maxFileBytes int64, verrs *ValidationErrors) {
	if len(files) > maxFiles {
		verrs.add("images", fmt.Sprintf("at most %d files per request", maxFiles))
		return
	}

	for i, file := range files {
		field := fmt.Sprintf("images[%d]", i)
		if int64(len(file.Data)) > maxFileBytes {
			verrs.add(field, fmt.Sprintf("exceeds %d byte limit", maxFileBytes))
			continue
		}
		if len(file.Data) == 0 {
			verrs.add(field, "empty file")
			continue
		}
		if mime := mimetype.Detect(file.Data); !allowedMIME(mime.String()) {
			verrs.add(field, fmt.Sprintf("unsupported type %s; allowed: jpeg, png, webp", mime.String()))
		}
	}
}

func allowedMIME(mime string) bool {
	_, ok := allowedMIMETypes[mime]
	return ok
}

// validateExternalURLs accepts only absolute http(s) URLs pointing at a
// plausible image path.
func validateExternalURLs(urls []string, verrs *ValidationErrors) {
	for i, raw := range urls {
		field := fmt.Sprintf("image_urls[%d]", i)

		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			verrs.add(field, "must be an absolute http(s) URL")
			continue
		}

		if !allowedImageExtension(u.Path) {
			verrs.add(field, "must end in .jpg, .jpeg, .png or .webp")
		}
	}
}

func allowedImageExtension(path string) bool {
	lower := strings.ToLower(path)
	for ext := range allowedImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// sanitizeText strips HTML and trims surrounding whitespace.
func sanitizeText(value string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(value))
}
