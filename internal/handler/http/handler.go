package http

import (
	"net/url"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
)

// SessionCookieName is the name of the admin session cookie. Its value is an
// opaque token; the server stores only the token's hash.
const SessionCookieName = "autolot_session"

// CSRFHeaderName carries the CSRF token on every admin mutation request.
const CSRFHeaderName = "X-CSRF-Token"

type Handler struct {
	services *service.Services

	// publicHost is the host of the public site, taken from
	// Server.PublicOrigin. Empty means the contact origin check is off.
	publicHost string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	var publicHost string
	if cfg.PublicOrigin != "" {
		u, err := url.Parse(cfg.PublicOrigin)
		if err != nil || u.Host == "" {
			logger.Warn().Str("public_origin", cfg.PublicOrigin).Msg("unparsable public origin, contact origin check disabled")
		} else {
			publicHost = u.Host
		}
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		publicHost: publicHost,
		logger:     logger,
	}
}
