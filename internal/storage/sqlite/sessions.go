package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expensetrack/internal/storage"
)

func (s *sqliteStorage) CreateSession(ctx context.Context, userID int64, sessionID string) (storage.Session, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, last_activity, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, userID, now.Unix(), now.Unix())
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to create session: %w", err))
	}

	return storage.NewSession(sessionID, userID, now, now), nil
}

// GetSession only returns sessions whose last activity falls within the
// idle timeout. Stale rows are treated the same as missing ones.
func (s *sqliteStorage) GetSession(
	ctx context.Context,
	sessionID string,
	idleTimeout time.Duration,
) (storage.Session, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, last_activity, created_at
		FROM sessions
		WHERE id = ? AND last_activity > ?
	`, sessionID, time.Now().Add(-idleTimeout).Unix())

	var id string
	var userID int64
	var lastActivity int64
	var createdAt int64

	err := row.Scan(&id, &userID, &lastActivity, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, wrapErr(fmt.Errorf("failed to scan session: %w", err))
	}

	return storage.NewSession(id, userID, time.Unix(lastActivity, 0).UTC(), time.Unix(createdAt, 0).UTC()), nil
}

func (s *sqliteStorage) TouchSession(ctx context.Context, sessionID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET last_activity = ? WHERE id = ?
	`, time.Now().Unix(), sessionID)
	if err != nil {
		return wrapErr(fmt.Errorf("failed to touch session: %w", err))
	}

	return nil
}

func (s *sqliteStorage) DeleteSession(ctx context.Context, sessionID string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id = ?
	`, sessionID)
	if err != nil {
		return wrapErr(fmt.Errorf("failed to delete session: %w", err))
	}

	return nil
}

func (s *sqliteStorage) DeleteIdleSessions(ctx context.Context, idleTimeout time.Duration) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE last_activity <= ?
	`, time.Now().Add(-idleTimeout).Unix())
	if err != nil {
		return wrapErr(fmt.Errorf("failed to delete idle sessions: %w", err))
	}

	return nil
}
