package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/models"
	gomail "github.com/wneessen/go-mail"
)

// mailNotifier delivers lead notifications over SMTP.
type mailNotifier struct {
	cfg    config.Mail
	logger *logger.Logger
}

// noopNotifier is used when no SMTP host is configured.
type noopNotifier struct{}

func (noopNotifier) NotifyLead(context.Context, models.Lead) error { return nil }

// NewLeadNotifier returns an SMTP-backed [LeadNotifier], or a no-op one when
// cfg.SMTPHost is empty.
func NewLeadNotifier(cfg config.Mail, logger *logger.Logger) LeadNotifier {
	if cfg.SMTPHost == "" {
		logger.Info().Msg("lead email disabled: no SMTP host configured")
		return noopNotifier{}
	}
	return &mailNotifier{cfg: cfg, logger: logger}
}

// NotifyLead implements [LeadNotifier]. One message per lead, built and sent
// on the caller's goroutine; the lead service detaches the call.
func (m *mailNotifier) NotifyLead(ctx context.Context, lead models.Lead) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	subject := "New lead: " + lead.Name
	if lead.VehicleTitle != "" {
		subject += " - " + lead.VehicleTitle
	}
	msg.Subject(subject)

	body := fmt.Sprintf("Name: %s\nPhone: %s\n", lead.Name, lead.Phone)
	if lead.VehicleTitle != "" {
		body += fmt.Sprintf("Vehicle: %s (id %d)\n", lead.VehicleTitle, lead.VehicleID)
	}
	body += "\n" + lead.Message + "\n"
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.cfg.SMTPHost,
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("building smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending lead notification: %w", err)
	}

	return nil
}
