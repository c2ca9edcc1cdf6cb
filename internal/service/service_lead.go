package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/models"
)

const (
	maxLeadNameLen    = 120
	maxLeadPhoneLen   = 40
	maxLeadMessageLen = 5_000
)

// leadService is the concrete implementation of [LeadService].
type leadService struct {
	leads    store.LeadRepository
	vehicles store.VehicleRepository
	notifier LeadNotifier
	limiter  *RateLimiter

	logger *logger.Logger
}

// NewLeadService constructs a [LeadService]. limiter throttles public
// submissions per client IP; notifier may be a no-op when email is disabled.
func NewLeadService(leads store.LeadRepository, vehicles store.VehicleRepository, notifier LeadNotifier, limiter *RateLimiter, logger *logger.Logger) LeadService {
	return &leadService{
		leads:    leads,
		vehicles: vehicles,
		notifier: notifier,
		limiter:  limiter,
		logger:   logger,
	}
}

// CreateLead implements [LeadService].
//
// A tripped honeypot returns a zero lead with no error so the transport
// layer answers success and the bot learns nothing. The email notification
// runs detached: a failed delivery is logged, never surfaced to the
// submitter.
func (s *leadService) CreateLead(ctx context.Context, input LeadInput) (models.Lead, error) {
	log := logger.FromContext(ctx)

	if input.Honeypot != "" {
		log.Info().Str("ip", input.IP).Msg("honeypot tripped; dropping submission")
		return models.Lead{}, nil
	}

	if !s.limiter.Allow(input.IP) {
		return models.Lead{}, ErrRateLimited
	}

	lead, err := s.buildLead(ctx, input)
	if err != nil {
		return models.Lead{}, err
	}

	s.limiter.Record(input.IP)

	created, err := s.leads.CreateLead(ctx, lead)
	if err != nil {
		return models.Lead{}, fmt.Errorf("creating lead: %w", err)
	}

	go func() {
		if err := s.notifier.NotifyLead(context.WithoutCancel(ctx), created); err != nil {
			s.logger.Err(err).Str("func", "*leadService.CreateLead").Int64("lead_id", created.ID).Msg("error: sending lead notification")
		}
	}()

	return created, nil
}

func (s *leadService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return s.leads.ListLeads(ctx)
}

func (s *leadService) DeleteLead(ctx context.Context, id int64) error {
	return s.leads.DeleteLead(ctx, id)
}

// buildLead validates the submission and denormalizes the vehicle title when
// a vehicle reference is given. A dangling vehicle_id is reported as a field
// error, not a 404.
func (s *leadService) buildLead(ctx context.Context, input LeadInput) (models.Lead, error) {
	var verrs ValidationErrors

	name := sanitizeText(input.Name)
	phone := sanitizeText(input.Phone)
	message := sanitizeText(input.Message)

	switch {
	case name == "":
		verrs.add("name", "required")
	case len(name) > maxLeadNameLen:
		verrs.add("name", fmt.Sprintf("must be at most %d characters", maxLeadNameLen))
	}
	switch {
	case phone == "":
		verrs.add("phone", "required")
	case len(phone) > maxLeadPhoneLen:
		verrs.add("phone", fmt.Sprintf("must be at most %d characters", maxLeadPhoneLen))
	}
	switch {
	case message == "":
		verrs.add("message", "required")
	case len(message) > maxLeadMessageLen:
		verrs.add("message", fmt.Sprintf("must be at most %d characters", maxLeadMessageLen))
	}

	lead := models.Lead{
		Name:      name,
		Phone:     phone,
		Message:   message,
		IP:        input.IP,
		UserAgent: input.UserAgent,
	}

	if input.VehicleID != 0 {
		vehicle, err := s.vehicles.GetVehicle(ctx, input.VehicleID)
		switch {
		case errors.Is(err, store.ErrVehicleNotFound):
			verrs.add("vehicle_id", "unknown vehicle")
		case err != nil:
			return models.Lead{}, fmt.Errorf("resolving lead vehicle: %w", err)
		default:
			lead.VehicleID = vehicle.ID
			lead.VehicleTitle = vehicle.Title()
		}
	}

	if !verrs.empty() {
		return models.Lead{}, &verrs
	}

	return lead, nil
}
