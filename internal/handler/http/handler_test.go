package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
)

// ─────────────────────────────────────────────
// Mock: service.VehicleService
// ─────────────────────────────────────────────

type mockVehicleService struct {
	createFn func(ctx context.Context, input service.VehicleInput, files []service.UploadFile, externalURLs []string) (int64, error)
	updateFn func(ctx context.Context, id int64, input service.VehicleInput, files []service.UploadFile, externalURLs []string) error
	deleteFn func(ctx context.Context, id int64) error
	getFn    func(ctx context.Context, id int64) (models.Vehicle, error)
	listFn   func(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error)
}

func (m *mockVehicleService) Create(ctx context.Context, input service.VehicleInput, files []service.UploadFile, urls []string) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input, files, urls)
	}
	return 1, nil
}

func (m *mockVehicleService) Update(ctx context.Context, id int64, input service.VehicleInput, files []service.UploadFile, urls []string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, input, files, urls)
	}
	return nil
}

func (m *mockVehicleService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockVehicleService) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Vehicle{ID: id}, nil
}

func (m *mockVehicleService) List(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []models.Vehicle{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.LeadService
// ─────────────────────────────────────────────

type mockLeadService struct {
	createFn func(ctx context.Context, input service.LeadInput) (models.Lead, error)
	listFn   func(ctx context.Context) ([]models.Lead, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockLeadService) CreateLead(ctx context.Context, input service.LeadInput) (models.Lead, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return models.Lead{ID: 1}, nil
}

func (m *mockLeadService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []models.Lead{}, nil
}

func (m *mockLeadService) DeleteLead(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

const (
	testSessionToken = "valid-session-token"
	testSessionID    = "session-1"
	testCSRFToken    = "valid-csrf-token"
)

type mockAuthService struct {
	loginFn func(ctx context.Context, password, ip string) (service.LoginResult, error)
}

func (m *mockAuthService) Login(ctx context.Context, password, ip string) (service.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, password, ip)
	}
	if password != "secret" {
		return service.LoginResult{}, service.ErrWrongPassword
	}
	return service.LoginResult{
		Session: models.Session{ID: testSessionID, ExpiresAt: time.Now().UTC().Add(24 * time.Hour)},
		Token:   testSessionToken, CSRFToken: testCSRFToken,
	}, nil
}

func (m *mockAuthService) Authenticate(_ context.Context, token string) (models.Session, error) {
	if token != testSessionToken {
		return models.Session{}, service.ErrUnauthenticated
	}
	return models.Session{ID: testSessionID, ExpiresAt: time.Now().UTC().Add(24 * time.Hour)}, nil
}

func (m *mockAuthService) Logout(context.Context, string) error { return nil }

func (m *mockAuthService) IssueCSRFToken(string) (string, time.Time, error) {
	return testCSRFToken, time.Now().UTC().Add(time.Hour), nil
}

func (m *mockAuthService) VerifyCSRFToken(token, sessionID string) error {
	if token != testCSRFToken || sessionID != testSessionID {
		return service.ErrCSRFInvalid
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestRouter(vehicles service.VehicleService, leads service.LeadService) http.Handler {
	if vehicles == nil {
		vehicles = &mockVehicleService{}
	}
	if leads == nil {
		leads = &mockLeadService{}
	}
	services := &service.Services{
		VehicleService: vehicles,
		LeadService:    leads,
		AuthService:    &mockAuthService{},
	}
	return NewHandler(services, config.Server{}, logger.Nop()).Init()
}

func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testSessionToken})
	return r
}

func withCSRF(r *http.Request) *http.Request {
	r.Header.Set(CSRFHeaderName, testCSRFToken)
	return r
}

func multipartVehicleBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("writing field %q: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeBody[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return out
}

func vehicleFields() map[string]string {
	return map[string]string{
		"year":  "2019",
		"make":  "Toyota",
		"model": "Corolla",
		"price": "1549900",
	}
}
