package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// Session rows carry only the token hash; the raw cookie token never reaches
// the database.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a freshly issued session row.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createSession,
		session.ID, session.TokenHash, session.CreatedAt, session.LastSeenAt, session.ExpiresAt)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindSessionByTokenHash returns the session row matching the given token
// hash or [ErrSessionNotFound].
func (r *sessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSessionByTokenHash, tokenHash)

	err := row.Scan(&session.ID, &session.TokenHash, &session.CreatedAt, &session.LastSeenAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByTokenHash").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// TouchSession refreshes the rolling expiry of the given session.
func (r *sessionRepository) TouchSession(ctx context.Context, id string, lastSeenAt, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, touchSession, lastSeenAt, expiresAt, id)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.TouchSession").Str("id", id).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteSession destroys the session row. Deleting an already-destroyed
// session is not an error: logout must be idempotent.
func (r *sessionRepository) DeleteSession(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSession, id); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Str("id", id).Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredSessions removes every session whose deadline is before now.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteExpiredSessions, now); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
