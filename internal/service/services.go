package service

import (
	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/store"
)

type Services struct {
	VehicleService VehicleService
	LeadService    LeadService
	AuthService    AuthService
}

func NewServices(storages store.Storages, images adapter.ImageStore, cleanup CleanupQueue, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	loginLimiter := NewRateLimiter(cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginMax)
	contactLimiter := NewRateLimiter(cfg.RateLimit.ContactWindow, cfg.RateLimit.ContactMax)
	notifier := NewLeadNotifier(cfg.Mail, logger)

	return &Services{
		VehicleService: NewVehicleService(storages.VehicleRepository, images, cleanup, cfg.Uploads, logger),
		LeadService:    NewLeadService(storages.LeadRepository, storages.VehicleRepository, notifier, contactLimiter, logger),
		AuthService:    NewAuthService(storages.SessionRepository, loginLimiter, cfg.App, logger),
	}
}
