package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeadSvc(t *testing.T, leads *mockLeadRepository, vehicles *mockVehicleRepository, notifier *mockNotifier) *leadService {
	t.Helper()
	limiter := NewRateLimiter(time.Hour, 10)
	return NewLeadService(leads, vehicles, notifier, limiter, logger.Nop()).(*leadService)
}

func validLeadInput() LeadInput {
	return LeadInput{
		Name:      "Dana Smith",
		Phone:     "+1 555 0100",
		Message:   "Is the Corolla still available?",
		IP:        "203.0.113.1",
		UserAgent: "Mozilla/5.0",
	}
}

func TestLeadService_CreateLead_Success(t *testing.T) {
	leads := &mockLeadRepository{}
	notifier := newMockNotifier()
	svc := newTestLeadSvc(t, leads, &mockVehicleRepository{}, notifier)

	lead, err := svc.CreateLead(context.Background(), validLeadInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), lead.ID)
	assert.Equal(t, "Dana Smith", lead.Name)

	select {
	case <-notifier.done:
	case <-time.After(time.Second):
		t.Fatal("notification was never sent")
	}
	require.Len(t, notifier.notified(), 1)
}

func TestLeadService_CreateLead_HoneypotDropsSilently(t *testing.T) {
	created := false
	leads := &mockLeadRepository{
		createFn: func(_ context.Context, lead models.Lead) (models.Lead, error) {
			created = true
			return lead, nil
		},
	}
	svc := newTestLeadSvc(t, leads, &mockVehicleRepository{}, newMockNotifier())

	input := validLeadInput()
	input.Honeypot = "http://spam.example.com"

	lead, err := svc.CreateLead(context.Background(), input)

	// a bot sees success and learns nothing
	assert.NoError(t, err)
	assert.Zero(t, lead.ID)
	assert.False(t, created, "no row for honeypot submissions")
}

func TestLeadService_CreateLead_DenormalizesVehicleTitle(t *testing.T) {
	vehicles := &mockVehicleRepository{
		getFn: func(_ context.Context, id int64) (models.Vehicle, error) {
			return models.Vehicle{ID: id, Year: 2019, Make: "Toyota", Model: "Corolla"}, nil
		},
	}
	leads := &mockLeadRepository{}
	svc := newTestLeadSvc(t, leads, vehicles, newMockNotifier())

	input := validLeadInput()
	input.VehicleID = 7

	lead, err := svc.CreateLead(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(7), lead.VehicleID)
	assert.Equal(t, "2019 Toyota Corolla", lead.VehicleTitle)
}

func TestLeadService_CreateLead_ValidationCollected(t *testing.T) {
	svc := newTestLeadSvc(t, &mockLeadRepository{}, &mockVehicleRepository{}, newMockNotifier())

	_, err := svc.CreateLead(context.Background(), LeadInput{IP: "203.0.113.1"})

	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs.Fields, 3) // name, phone, message
}

func TestLeadService_CreateLead_RateLimited(t *testing.T) {
	leads := &mockLeadRepository{}
	svc := newTestLeadSvc(t, leads, &mockVehicleRepository{}, newMockNotifier())
	svc.limiter = NewRateLimiter(time.Hour, 1)
	ctx := context.Background()

	_, err := svc.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	_, err = svc.CreateLead(ctx, validLeadInput())
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestLeadService_CreateLead_StripsHTML(t *testing.T) {
	leads := &mockLeadRepository{}
	svc := newTestLeadSvc(t, leads, &mockVehicleRepository{}, newMockNotifier())

	input := validLeadInput()
	input.Message = `<img src=x onerror=alert(1)>Call me back`

	lead, err := svc.CreateLead(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Call me back", lead.Message)
}
