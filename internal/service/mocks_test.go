package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
)

// ─────────────────────────────────────────────
// Mock: store.VehicleRepository
// ─────────────────────────────────────────────

type mockVehicleRepository struct {
	createFn func(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	getFn    func(ctx context.Context, id int64) (models.Vehicle, error)
	listFn   func(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error)
	updateFn func(ctx context.Context, vehicle models.Vehicle) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockVehicleRepository) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	if m.createFn != nil {
		return m.createFn(ctx, vehicle)
	}
	vehicle.ID = 1
	return vehicle, nil
}

func (m *mockVehicleRepository) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Vehicle{ID: id}, nil
}

func (m *mockVehicleRepository) ListVehicles(ctx context.Context, filter store.VehicleFilter) ([]models.Vehicle, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []models.Vehicle{}, nil
}

func (m *mockVehicleRepository) UpdateVehicle(ctx context.Context, vehicle models.Vehicle) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, vehicle)
	}
	return nil
}

func (m *mockVehicleRepository) DeleteVehicle(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.LeadRepository
// ─────────────────────────────────────────────

type mockLeadRepository struct {
	createFn func(ctx context.Context, lead models.Lead) (models.Lead, error)
	listFn   func(ctx context.Context) ([]models.Lead, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockLeadRepository) CreateLead(ctx context.Context, lead models.Lead) (models.Lead, error) {
	if m.createFn != nil {
		return m.createFn(ctx, lead)
	}
	lead.ID = 1
	return lead, nil
}

func (m *mockLeadRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []models.Lead{}, nil
}

func (m *mockLeadRepository) DeleteLead(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn         func(ctx context.Context, session models.Session) error
	findFn           func(ctx context.Context, tokenHash string) (models.Session, error)
	touchFn          func(ctx context.Context, id string, lastSeenAt, expiresAt time.Time) error
	deleteFn         func(ctx context.Context, id string) error
	deleteExpiredFn  func(ctx context.Context, now time.Time) error
	createdSessions  []models.Session
	deletedSessionID string
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	m.createdSessions = append(m.createdSessions, session)
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	if m.findFn != nil {
		return m.findFn(ctx, tokenHash)
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (m *mockSessionRepository) TouchSession(ctx context.Context, id string, lastSeenAt, expiresAt time.Time) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, id, lastSeenAt, expiresAt)
	}
	return nil
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, id string) error {
	m.deletedSessionID = id
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: CleanupQueue
// ─────────────────────────────────────────────

type mockCleanupQueue struct {
	mu       sync.Mutex
	enqueued [][]string
}

func (m *mockCleanupQueue) Enqueue(handles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enqueued = append(m.enqueued, handles)
}

func (m *mockCleanupQueue) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, batch := range m.enqueued {
		out = append(out, batch...)
	}
	return out
}

// ─────────────────────────────────────────────
// Mock: LeadNotifier
// ─────────────────────────────────────────────

type mockNotifier struct {
	mu    sync.Mutex
	leads []models.Lead
	err   error
	done  chan struct{}
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 16)}
}

func (m *mockNotifier) NotifyLead(_ context.Context, lead models.Lead) error {
	m.mu.Lock()
	m.leads = append(m.leads, lead)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *mockNotifier) notified() []models.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Lead(nil), m.leads...)
}
