// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/autolot/internal/config"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of [AuthService] for the single
// admin identity.
//
// The session cookie value is an opaque random token; only its SHA-256 hash
// reaches the database, so a leaked sessions table cannot be replayed. CSRF
// tokens are short-lived signed JWTs bound to the session id.
type authService struct {
	sessions store.SessionRepository
	limiter  *RateLimiter

	// passwordBcrypt takes precedence over passwordDigest when set.
	passwordBcrypt string
	// passwordDigest is the HMAC digest of the configured plain password,
	// precomputed so login compares two fixed-length digests in constant
	// time.
	passwordDigest string
	hashKey        string

	csrfSignKey  string
	sessionTTL   time.Duration
	csrfTokenTTL time.Duration

	uuid *utils.UUIDGenerator

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] from the app configuration.
// limiter counts failed login attempts per client IP; the lockout applies to
// correct passwords too, so the limiter gives nothing away.
func NewAuthService(sessions store.SessionRepository, limiter *RateLimiter, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		sessions:       sessions,
		limiter:        limiter,
		passwordBcrypt: cfg.AdminPasswordBcrypt,
		passwordDigest: utils.HashString(cfg.AdminPassword, cfg.HashKey),
		hashKey:        cfg.HashKey,
		csrfSignKey:    cfg.CSRFSignKey,
		sessionTTL:     cfg.SessionTTL,
		csrfTokenTTL:   cfg.CSRFTokenTTL,
		uuid:           utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// Login implements [AuthService].
//
// The limiter check runs before the password check: once an address is
// locked out, even the correct password is refused for the remainder of the
// window, so the lockout cannot be used as a password oracle.
func (a *authService) Login(ctx context.Context, password, ip string) (LoginResult, error) {
	log := logger.FromContext(ctx)

	if !a.limiter.Allow(ip) {
		log.Warn().Str("ip", ip).Msg("login attempt from locked-out address")
		return LoginResult{}, ErrRateLimited
	}

	if !a.passwordMatches(password) {
		a.limiter.Record(ip)
		log.Warn().Str("ip", ip).Msg("failed login attempt")
		return LoginResult{}, ErrWrongPassword
	}

	token, err := newSessionToken()
	if err != nil {
		return LoginResult{}, fmt.Errorf("generating session token: %w", err)
	}

	now := time.Now().UTC()
	session := models.Session{
		ID:         a.uuid.Generate(),
		TokenHash:  utils.HashToken(token),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(a.sessionTTL),
	}

	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("persisting session: %w", err)
	}

	csrfToken, csrfExpiresAt, err := a.IssueCSRFToken(session.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Session:       session,
		Token:         token,
		CSRFToken:     csrfToken,
		CSRFExpiresAt: csrfExpiresAt,
	}, nil
}

// Authenticate implements [AuthService]. A resolved session gets its rolling
// deadline pushed out; expired rows are destroyed on sight.
func (a *authService) Authenticate(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := a.sessions.FindSessionByTokenHash(ctx, utils.HashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrUnauthenticated
		}
		return models.Session{}, fmt.Errorf("resolving session: %w", err)
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		if err := a.sessions.DeleteSession(ctx, session.ID); err != nil {
			log.Err(err).Str("func", "*authService.Authenticate").Msg("error: deleting expired session")
		}
		return models.Session{}, ErrUnauthenticated
	}

	session.LastSeenAt = now
	session.ExpiresAt = now.Add(a.sessionTTL)
	if err := a.sessions.TouchSession(ctx, session.ID, session.LastSeenAt, session.ExpiresAt); err != nil {
		// session vanished between lookup and touch; treat as logged out
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrUnauthenticated
		}
		return models.Session{}, fmt.Errorf("refreshing session: %w", err)
	}

	return session, nil
}

// Logout implements [AuthService].
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.DeleteSession(ctx, sessionID)
}

// IssueCSRFToken implements [AuthService].
func (a *authService) IssueCSRFToken(sessionID string) (string, time.Time, error) {
	token, err := utils.GenerateCSRFToken(sessionID, a.csrfTokenTTL, a.csrfSignKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issuing csrf token: %w", err)
	}
	return token, time.Now().UTC().Add(a.csrfTokenTTL), nil
}

// VerifyCSRFToken implements [AuthService].
func (a *authService) VerifyCSRFToken(token, sessionID string) error {
	if err := utils.ValidateCSRFToken(token, sessionID, a.csrfSignKey); err != nil {
		return fmt.Errorf("%w: %w", ErrCSRFInvalid, err)
	}
	return nil
}

// passwordMatches compares the candidate against the configured credential
// without leaking timing. With a bcrypt hash configured the comparison cost
// is bcrypt's own; otherwise both sides are reduced to fixed-length HMAC
// digests first.
func (a *authService) passwordMatches(candidate string) bool {
	if a.passwordBcrypt != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.passwordBcrypt), []byte(candidate)) == nil
	}

	digest := utils.HashString(candidate, a.hashKey)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(a.passwordDigest)) == 1
}

// newSessionToken returns a 256-bit random token in hex.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
