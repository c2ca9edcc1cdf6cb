package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Public reads ─────────────────────────────────────────────────────────────

func TestListVehicles_Public(t *testing.T) {
	vehicles := &mockVehicleService{
		listFn: func(_ context.Context, filter store.VehicleFilter) ([]models.Vehicle, error) {
			assert.Equal(t, "available", filter.Status)
			return []models.Vehicle{{ID: 1}, {ID: 2}}, nil
		},
	}
	router := newTestRouter(vehicles, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles?status=available", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]models.Vehicle](t, rec.Body)
	assert.Len(t, got, 2)
}

func TestGetVehicle_NotFound(t *testing.T) {
	vehicles := &mockVehicleService{
		getFn: func(context.Context, int64) (models.Vehicle, error) {
			return models.Vehicle{}, store.ErrVehicleNotFound
		},
	}
	router := newTestRouter(vehicles, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[models.ErrorResponse](t, rec.Body)
	assert.Equal(t, models.CodeNotFound, body.Code)
}

func TestGetVehicle_BadID(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── Mutation gate ────────────────────────────────────────────────────────────

func TestCreateVehicle_RequiresSession(t *testing.T) {
	router := newTestRouter(nil, nil)

	body, contentType := multipartVehicleBody(t, vehicleFields())
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateVehicle_RequiresCSRF(t *testing.T) {
	router := newTestRouter(nil, nil)

	body, contentType := multipartVehicleBody(t, vehicleFields())
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/vehicles", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeBody[models.ErrorResponse](t, rec.Body)
	// the distinct code is what lets the client refresh and retry
	assert.Equal(t, models.CodeCSRFInvalid, resp.Code)
}

func TestCreateVehicle_Success(t *testing.T) {
	var gotInput service.VehicleInput
	vehicles := &mockVehicleService{
		createFn: func(_ context.Context, input service.VehicleInput, _ []service.UploadFile, _ []string) (int64, error) {
			gotInput = input
			return 42, nil
		},
	}
	router := newTestRouter(vehicles, nil)

	body, contentType := multipartVehicleBody(t, vehicleFields())
	req := withCSRF(withSession(httptest.NewRequest(http.MethodPost, "/api/vehicles", body)))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[models.CreatedResponse](t, rec.Body)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Toyota", gotInput.Make)
	assert.Equal(t, 2019, gotInput.Year)
}

func TestCreateVehicle_ValidationErrorListsEveryField(t *testing.T) {
	router := newTestRouter(nil, nil)

	fields := vehicleFields()
	fields["year"] = "1850"
	delete(fields, "make")

	body, contentType := multipartVehicleBody(t, fields)
	req := withCSRF(withSession(httptest.NewRequest(http.MethodPost, "/api/vehicles", body)))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[models.ErrorResponse](t, rec.Body)
	assert.Equal(t, models.CodeValidation, resp.Code)
	assert.GreaterOrEqual(t, len(resp.Fields), 2)
}

func TestCreateVehicle_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(nil, nil)

	fields := vehicleFields()
	fields["vin"] = "1HGCM82633A004352"

	body, contentType := multipartVehicleBody(t, fields)
	req := withCSRF(withSession(httptest.NewRequest(http.MethodPost, "/api/vehicles", body)))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteVehicle_Success(t *testing.T) {
	deleted := int64(0)
	vehicles := &mockVehicleService{
		deleteFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	router := newTestRouter(vehicles, nil)

	req := withCSRF(withSession(httptest.NewRequest(http.MethodDelete, "/api/vehicles/7", nil)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), deleted)
}

// ── Admin session endpoints ──────────────────────────────────────────────────

func TestLogin_SetsCookieAndReturnsCSRFToken(t *testing.T) {
	router := newTestRouter(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"secret"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.LoginResponse](t, rec.Body)
	assert.True(t, resp.Success)
	assert.Equal(t, testCSRFToken, resp.CSRFToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, testSessionToken, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_RateLimited(t *testing.T) {
	services := &service.Services{
		VehicleService: &mockVehicleService{},
		LeadService:    &mockLeadService{},
		AuthService: &mockAuthService{
			loginFn: func(context.Context, string, string) (service.LoginResult, error) {
				return service.LoginResult{}, service.ErrRateLimited
			},
		},
	}
	router := NewHandler(services, config.Server{}, logger.Nop()).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"secret"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	resp := decodeBody[models.ErrorResponse](t, rec.Body)
	assert.Equal(t, models.CodeRateLimited, resp.Code)
}

func TestSession_ProbeNeverErrors(t *testing.T) {
	router := newTestRouter(nil, nil)

	// no cookie: authenticated false, still 200
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.SessionResponse](t, rec.Body)
	assert.False(t, resp.Authenticated)

	// live cookie: authenticated true with expiry
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[models.SessionResponse](t, rec.Body)
	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.ExpiresAt)
}

func TestCSRFToken_RequiresSession(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/csrf-token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/admin/csrf-token", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.CSRFResponse](t, rec.Body)
	assert.Equal(t, testCSRFToken, resp.CSRFToken)
}

// ── Contact & leads ──────────────────────────────────────────────────────────

func TestContact_Success(t *testing.T) {
	var got service.LeadInput
	leads := &mockLeadService{
		createFn: func(_ context.Context, input service.LeadInput) (models.Lead, error) {
			got = input
			return models.Lead{ID: 5}, nil
		},
	}
	router := newTestRouter(nil, leads)

	body := `{"name":"Dana","phone":"+1 555 0100","message":"Still available?","vehicleId":7,"website":""}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("User-Agent", "test-agent")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dana", got.Name)
	assert.Equal(t, int64(7), got.VehicleID)
	assert.Equal(t, "test-agent", got.UserAgent)
	assert.NotEmpty(t, got.IP)
}

func TestContact_HoneypotLooksLikeSuccess(t *testing.T) {
	leads := &mockLeadService{
		createFn: func(_ context.Context, input service.LeadInput) (models.Lead, error) {
			// the service's honeypot path: zero lead, no error
			if input.Honeypot != "" {
				return models.Lead{}, nil
			}
			return models.Lead{ID: 1}, nil
		},
	}
	router := newTestRouter(nil, leads)

	body := `{"name":"bot","phone":"1","message":"spam","website":"http://spam.example.com"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.SuccessResponse](t, rec.Body)
	assert.True(t, resp.Success)
}

func TestContact_OriginCheck(t *testing.T) {
	contactBody := `{"name":"Dana","phone":"+1 555 0100","message":"Still available?"}`

	tests := []struct {
		name       string
		origin     string
		referer    string
		wantStored bool
	}{
		{name: "matching origin", origin: "https://lot.example.com", wantStored: true},
		{name: "matching origin different case", origin: "https://LOT.Example.COM", wantStored: true},
		{name: "matching referer", referer: "https://lot.example.com/vehicles/7", wantStored: true},
		{name: "no origin or referer", wantStored: true},
		{name: "foreign origin", origin: "https://evil.example.net", wantStored: false},
		{name: "foreign referer", referer: "https://evil.example.net/form", wantStored: false},
		{name: "garbage origin", origin: "::::", wantStored: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := false
			services := &service.Services{
				VehicleService: &mockVehicleService{},
				AuthService:    &mockAuthService{},
				LeadService: &mockLeadService{
					createFn: func(context.Context, service.LeadInput) (models.Lead, error) {
						stored = true
						return models.Lead{ID: 1}, nil
					},
				},
			}
			cfg := config.Server{PublicOrigin: "https://lot.example.com"}
			router := NewHandler(services, cfg, logger.Nop()).Init()

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(contactBody))
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// the caller always sees success, even when the submission is dropped
			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeBody[models.SuccessResponse](t, rec.Body)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantStored, stored)
		})
	}
}

func TestContact_OriginCheckOffWhenUnconfigured(t *testing.T) {
	stored := false
	leads := &mockLeadService{
		createFn: func(context.Context, service.LeadInput) (models.Lead, error) {
			stored = true
			return models.Lead{ID: 1}, nil
		},
	}
	router := newTestRouter(nil, leads)

	body := `{"name":"Dana","phone":"+1 555 0100","message":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Origin", "https://anywhere.example.org")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stored)
}

func TestListLeads_RequiresSession(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTraceID_EchoedOnResponse(t *testing.T) {
	router := newTestRouter(nil, nil)

	// caller-supplied id comes back untouched
	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("X-Trace-ID", "trace-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get("X-Trace-ID"))

	// otherwise the server mints one
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestDeleteLead_RequiresCSRF(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodDelete, "/api/leads/3", nil)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withCSRF(withSession(httptest.NewRequest(http.MethodDelete, "/api/leads/3", nil))))
	assert.Equal(t, http.StatusOK, rec.Code)
}
