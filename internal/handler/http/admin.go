package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid login body")
		writeError(w, r, errors.Join(errBadJSON, err))
		return
	}

	result, err := h.services.AuthService.Login(ctx, req.Password, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	setSessionCookie(w, result.Token, result.Session.ExpiresAt)

	_, _ = utils.WriteJSON(w, models.LoginResponse{
		Success:   true,
		CSRFToken: result.CSRFToken,
		ExpiresAt: result.Session.ExpiresAt,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		writeError(w, r, errSessionMissingFromContext)
		return
	}

	if err := h.services.AuthService.Logout(ctx, session.ID); err != nil {
		log.Err(err).Msg("logout failed")
		writeError(w, r, err)
		return
	}

	clearSessionCookie(w)
	_, _ = utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// session reports whether the caller holds a live admin session. Unlike the
// protected routes it answers 200 either way, so the admin client can probe
// without tripping error handling.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		_, _ = utils.WriteJSON(w, models.SessionResponse{Authenticated: false}, http.StatusOK)
		return
	}

	session, err := h.services.AuthService.Authenticate(ctx, cookie.Value)
	if err != nil {
		_, _ = utils.WriteJSON(w, models.SessionResponse{Authenticated: false}, http.StatusOK)
		return
	}

	setSessionCookie(w, cookie.Value, session.ExpiresAt)
	_, _ = utils.WriteJSON(w, models.SessionResponse{
		Authenticated: true,
		ExpiresAt:     &session.ExpiresAt,
	}, http.StatusOK)
}

func (h *Handler) csrfToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, r, errSessionMissingFromContext)
		return
	}

	token, _, err := h.services.AuthService.IssueCSRFToken(session.ID)
	if err != nil {
		log.Err(err).Msg("issuing csrf token failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.CSRFResponse{CSRFToken: token}, http.StatusOK)
}

func setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
