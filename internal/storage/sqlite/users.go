package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expensetrack/internal/storage"
)

func (s *sqliteStorage) CreateUser(ctx context.Context, username, passwordHash string) (storage.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	createdAt := time.Now()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, createdAt.Unix())
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to create user: %w", err))
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to get user id: %w", err))
	}

	return storage.NewUser(userID, username, passwordHash, createdAt), nil
}

func (s *sqliteStorage) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`, username)

	return userFromRow(row.Scan)
}

func (s *sqliteStorage) GetUserByID(ctx context.Context, id int64) (storage.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`, id)

	return userFromRow(row.Scan)
}

func (s *sqliteStorage) ListUsers(ctx context.Context) ([]storage.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	users := []storage.User{}
	for rows.Next() {
		user, userErr := userFromRow(rows.Scan)
		if userErr != nil {
			return nil, userErr
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, wrapErr(err)
	}

	return users, nil
}

func userFromRow(scan func(dest ...any) error) (storage.User, error) {
	var id int64
	var username string
	var passwordHash string
	var createdAt int64

	if err := scan(&id, &username, &passwordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, wrapErr(fmt.Errorf("failed to scan user: %w", err))
	}

	return storage.NewUser(id, username, passwordHash, time.Unix(createdAt, 0).UTC()), nil
}
