package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// SessionRepository handles session data access.
type SessionRepository struct {
	store *database.Store
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(store *database.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query, args, err := sb.Insert("sessions").
		Columns("id", "user_id", "token_hash", "issued_at", "expires_at", "revoked").
		Values(session.ID, session.UserID, session.TokenHash,
			formatTime(session.IssuedAt), formatTime(session.ExpiresAt), session.Revoked).
		ToSql()
	if err != nil {
		return mapError(err)
	}
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a session by its ID. Returns nil (no error) when absent.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	query, args, err := sb.Select("id", "user_id", "token_hash", "issued_at", "expires_at", "revoked").
		From("sessions").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}

	var (
		session   model.Session
		issuedAt  string
		expiresAt string
	)
	err = r.store.DB.QueryRowContext(ctx, query, args...).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &issuedAt, &expiresAt, &session.Revoked)
	if err != nil {
		if errors.Is(mapError(err), database.ErrNotFound) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	session.IssuedAt = parseTime(issuedAt)
	session.ExpiresAt = parseTime(expiresAt)
	return &session, nil
}

// Revoke marks a session as revoked. Revoking an already-revoked or missing
// session is not an error; logout is idempotent.
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	query, args, err := sb.Update("sessions").
		Set("revoked", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return mapError(err)
	}
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// RevokeAllForUser revokes every session belonging to a user.
func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	query, args, err := sb.Update("sessions").
		Set("revoked", true).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return mapError(err)
	}
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before the given cutoff and
// reports how many rows went away.
func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := sb.Delete("sessions").
		Where(sq.Lt{"expires_at": formatTime(before)}).
		ToSql()
	if err != nil {
		return 0, mapError(err)
	}
	res, err := r.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return deleted, nil
}
