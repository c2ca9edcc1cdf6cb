// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
	"github.com/go-resty/resty/v2"
)

// APIClient talks to the autolot API server on behalf of the admin TUI.
//
// The session rides on a cookie jar; the CSRF token is held in memory and
// attached to every mutation. When the server rejects a token, the client
// fetches a fresh one and retries the mutation exactly once. A second
// rejection surfaces to the caller, so a systemically broken session never
// turns into a retry loop.
type APIClient struct {
	client *utils.HTTPClient

	mu        sync.Mutex
	csrfToken string

	logger *logger.Logger
}

// NewAPIClient constructs the admin API client. It normalises and validates
// the base URL from cfg.HTTPAddress and installs a cookie jar so the session
// cookie set by login is carried on every subsequent request.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewAPIClient(cfg config.ClientAdapter, logger *logger.Logger) (*APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetCookieJar(jar)

	return &APIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
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

// Login authenticates with the admin password. On success the session
// cookie lands in the jar and the returned CSRF token is stored for
// subsequent mutations.
func (c *APIClient) Login(ctx context.Context, password string) error {
	var result models.LoginResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"password": password}).
		SetResult(&result).
		Post("/api/admin/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return fmt.Errorf("%w: wrong password", ErrLoginRejected)
		}
		return err
	}

	c.setCSRFToken(result.CSRFToken)
	return nil
}

// Logout destroys the server-side session. The stored CSRF token is dropped
// regardless of the outcome.
func (c *APIClient) Logout(ctx context.Context) error {
	defer c.setCSRFToken("")

	resp, err := c.client.R().
		SetContext(ctx).
		Post("/api/admin/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapAPIError(resp)
}

// Session probes whether the current session cookie is still accepted.
func (c *APIClient) Session(ctx context.Context) (models.SessionResponse, error) {
	var result models.SessionResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/admin/session")
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return models.SessionResponse{}, err
	}

	return result, nil
}

// RefreshCSRFToken fetches a fresh CSRF token for the current session and
// stores it for subsequent mutations.
func (c *APIClient) RefreshCSRFToken(ctx context.Context) error {
	var result models.CSRFResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/admin/csrf-token")
	if err != nil {
		return fmt.Errorf("csrf token request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return err
	}

	c.setCSRFToken(result.CSRFToken)
	return nil
}

// ListVehicles fetches the inventory as raw rows, preserving whatever shape
// the server serves so schema detection and image normalization can inspect
// it.
func (c *APIClient) ListVehicles(ctx context.Context) ([]VehicleRow, error) {
	var rows []VehicleRow

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&rows).
		Get("/api/vehicles")
	if err != nil {
		return nil, fmt.Errorf("list vehicles request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return nil, err
	}

	return rows, nil
}

// GetVehicle fetches one inventory row by id.
func (c *APIClient) GetVehicle(ctx context.Context, id int64) (VehicleRow, error) {
	var row VehicleRow

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&row).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get("/api/vehicles/{id}")
	if err != nil {
		return nil, fmt.Errorf("get vehicle request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return nil, err
	}

	return row, nil
}

// CreateVehicle submits a new listing and returns its assigned id.
func (c *APIClient) CreateVehicle(ctx context.Context, payload Payload) (int64, error) {
	var result models.CreatedResponse

	_, err := c.doMutation(ctx, func(req *resty.Request) (*resty.Response, error) {
		return attachPayload(req, payload).
			SetResult(&result).
			Post("/api/vehicles")
	})
	if err != nil {
		return 0, err
	}

	return result.ID, nil
}

// UpdateVehicle replaces the listing with the given id.
func (c *APIClient) UpdateVehicle(ctx context.Context, id int64, payload Payload) error {
	_, err := c.doMutation(ctx, func(req *resty.Request) (*resty.Response, error) {
		return attachPayload(req, payload).
			SetPathParam("id", strconv.FormatInt(id, 10)).
			Put("/api/vehicles/{id}")
	})
	return err
}

// DeleteVehicle removes the listing with the given id.
func (c *APIClient) DeleteVehicle(ctx context.Context, id int64) error {
	_, err := c.doMutation(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("id", strconv.FormatInt(id, 10)).
			Delete("/api/vehicles/{id}")
	})
	return err
}

// ListLeads fetches every stored lead, newest first.
func (c *APIClient) ListLeads(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&leads).
		Get("/api/leads")
	if err != nil {
		return nil, fmt.Errorf("list leads request: %w", err)
	}
	if err = mapAPIError(resp); err != nil {
		return nil, err
	}

	return leads, nil
}

// DeleteLead removes the lead with the given id.
func (c *APIClient) DeleteLead(ctx context.Context, id int64) error {
	_, err := c.doMutation(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("id", strconv.FormatInt(id, 10)).
			Delete("/api/leads/{id}")
	})
	return err
}

// doMutation sends a state-changing request with the stored CSRF token
// attached. A csrf_invalid rejection triggers one token refresh and one
// retry; any second rejection is returned as-is.
func (c *APIClient) doMutation(ctx context.Context, send func(req *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	resp, err := send(c.mutationRequest(ctx))
	if err != nil {
		return nil, fmt.Errorf("mutation request: %w", err)
	}

	mapped := mapAPIError(resp)
	if !errors.Is(mapped, ErrCSRFRejected) {
		return resp, mapped
	}

	c.logger.Debug().Msg("csrf token rejected, refreshing and retrying once")
	if err = c.RefreshCSRFToken(ctx); err != nil {
		return nil, err
	}

	resp, err = send(c.mutationRequest(ctx))
	if err != nil {
		return nil, fmt.Errorf("mutation retry request: %w", err)
	}

	return resp, mapAPIError(resp)
}

func (c *APIClient) mutationRequest(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("X-CSRF-Token", c.currentCSRFToken())
}

// attachPayload encodes a vehicle payload as the multipart form the server
// expects: flat value fields, repeated image_urls values, and file parts
// under images.
func attachPayload(req *resty.Request, payload Payload) *resty.Request {
	values := url.Values{}
	for key, value := range payload.Fields {
		values.Set(key, value)
	}
	for _, u := range payload.ImageURLs {
		values.Add("image_urls", u)
	}
	req.SetFormDataFromValues(values)

	for _, file := range payload.Files {
		req.SetFileReader("images", file.Filename, bytes.NewReader(file.Data))
	}

	return req
}

func (c *APIClient) setCSRFToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.csrfToken = token
}

func (c *APIClient) currentCSRFToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.csrfToken
}
