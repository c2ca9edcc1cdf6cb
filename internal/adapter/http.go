package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
)

// uploadResponse is the image host's answer to a successful upload.
// secure_url is preferred over url when both are present.
type uploadResponse struct {
	URL            string `json:"url"`
	SecureURL      string `json:"secure_url"`
	DeletionHandle string `json:"deletion_handle"`
}

type httpImageStore struct {
	client *utils.HTTPClient

	apiKey string
	folder string

	logger *logger.Logger
}

// NewHTTPImageStore constructs an HTTP/REST implementation of [ImageStore].
// It normalises and validates the base URL from cfg.BaseURL and configures
// the underlying HTTP client with the resolved base URL, the API key and the
// request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPImageStore(cfg config.ImageHost, logger *logger.Logger) (ImageStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image host address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpImageStore{
		client: client,
		apiKey: cfg.APIKey,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [ImageStore]. It POSTs the image bytes as a multipart
// form to POST /upload under the configured folder and decodes the returned
// public URL and deletion handle. Any transport or host-side failure is
// returned wrapped in [ErrUploadFailed].
func (h *httpImageStore) Upload(ctx context.Context, data []byte, filename string) (models.ImageRef, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.apiKey).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{"folder": h.folder}).
		Post("/upload")
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImageRef{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	var uploaded uploadResponse
	if err = json.Unmarshal(resp.Body(), &uploaded); err != nil {
		return models.ImageRef{}, fmt.Errorf("%w: decode upload response: %w", ErrUploadFailed, err)
	}

	publicURL := uploaded.SecureURL
	if publicURL == "" {
		publicURL = uploaded.URL
	}
	if publicURL == "" || uploaded.DeletionHandle == "" {
		return models.ImageRef{}, fmt.Errorf("%w: host response missing url or deletion handle", ErrUploadFailed)
	}

	return models.ImageRef{URL: publicURL, DeletionHandle: uploaded.DeletionHandle}, nil
}

// Delete implements [ImageStore]. It sends DELETE /images/{handle}.
// A handle the host no longer knows is treated as already deleted.
func (h *httpImageStore) Delete(ctx context.Context, handle string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+h.apiKey).
		SetPathParam("handle", handle).
		Delete("/images/{handle}")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	return nil
}

// DeleteMany implements [ImageStore]. Handles are deleted sequentially; a
// failed delete is logged and the remaining handles are still attempted.
func (h *httpImageStore) DeleteMany(ctx context.Context, handles []string) error {
	var firstErr error
	for _, handle := range handles {
		if err := h.Delete(ctx, handle); err != nil {
			h.logger.Err(err).Str("func", "*httpImageStore.DeleteMany").Str("handle", handle).Msg("error: deleting image")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
