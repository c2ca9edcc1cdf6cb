// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Session authentication, CSRF verification, logging and
// tracing concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/utils"
)

// sessionAuth is an HTTP middleware that enforces admin session
// authentication.
//
// It reads the session cookie, resolves it through
// [service.AuthService.Authenticate] (which also refreshes the rolling
// expiry), and on success stores the session in the request context under
// [utils.SessionCtxKey] and re-issues the cookie with the pushed-out
// deadline.
//
// Requests without a cookie, or whose token resolves to no live session,
// are rejected with HTTP 401.
func (h *Handler) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			log.Debug().Msg("request without session cookie")
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		ctx := r.Context()
		session, err := h.services.AuthService.Authenticate(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("session authentication failed")
			writeError(w, r, err)
			return
		}

		setSessionCookie(w, cookie.Value, session.ExpiresAt)

		ctx = context.WithValue(ctx, utils.SessionCtxKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// csrf is an HTTP middleware that verifies the CSRF token on mutation
// requests. It must run after sessionAuth: the token is bound to the
// session id resolved there. A missing or invalid token is a 403 with the
// csrf_invalid code, which tells the admin client to fetch a fresh token
// and retry once.
func (h *Handler) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			writeError(w, r, service.ErrUnauthenticated)
			return
		}

		token := r.Header.Get(CSRFHeaderName)
		if err := h.services.AuthService.VerifyCSRFToken(token, session.ID); err != nil {
			log.Err(err).Msg("csrf verification failed")
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
