package http

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/autolot/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxMultipartMemory bounds the in-memory portion of a parsed multipart
// form; larger file parts spill to temporary files.
const maxMultipartMemory = 32 << 20

// imagesFormKey and imageURLsFormKey are the two multipart keys handled
// outside the vehicle field allow-list: uploaded files and external image
// URLs.
const (
	imagesFormKey    = "images"
	imageURLsFormKey = "image_urls"
)

// clientIP resolves the requester address, preferring the first hop of
// X-Forwarded-For when a reverse proxy is in front.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// idParam parses the {id} path parameter as a positive integer.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, raw)
	}
	return id, nil
}

// vehicleForm is a decoded vehicle mutation request: the flat descriptive
// fields, the uploaded files, and the external image URLs.
type vehicleForm struct {
	fields       map[string]string
	files        []service.UploadFile
	externalURLs []string
}

// parseVehicleForm decodes the multipart body of a vehicle mutation.
// File parts under the "images" key are read fully into memory (the service
// sniffs their bytes); "image_urls" values pass through as-is; every other
// value field lands in the flat field map for the service's allow-list.
func parseVehicleForm(r *http.Request) (vehicleForm, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return vehicleForm{}, fmt.Errorf("%w: %w", errBadMultipart, err)
	}

	form := vehicleForm{fields: make(map[string]string)}

	for key, values := range r.MultipartForm.Value {
		if key == imageURLsFormKey {
			for _, v := range values {
				if strings.TrimSpace(v) != "" {
					form.externalURLs = append(form.externalURLs, strings.TrimSpace(v))
				}
			}
			continue
		}
		if len(values) > 0 {
			form.fields[key] = values[0]
		}
	}

	for _, header := range r.MultipartForm.File[imagesFormKey] {
		file, err := header.Open()
		if err != nil {
			return vehicleForm{}, fmt.Errorf("%w: opening %q: %w", errBadMultipart, header.Filename, err)
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return vehicleForm{}, fmt.Errorf("%w: reading %q: %w", errBadMultipart, header.Filename, err)
		}
		form.files = append(form.files, service.UploadFile{Filename: header.Filename, Data: data})
	}

	return form, nil
}
