package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"expensetrack/internal/logger"
)

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
		)
	`)
	return err
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	migrations := []struct {
		name string
		up   func(*sql.Tx) error
	}{
		{
			name: "Create users table",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS users
					(
					id INTEGER PRIMARY KEY,
					username TEXT NOT NULL,
					password_hash TEXT NOT NULL,
					created_at INTEGER NOT NULL,
					UNIQUE(username) ON CONFLICT FAIL
					) STRICT;`)
				return err
			},
		},
		{
			name: "Create sessions table",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS sessions
					(
					id TEXT PRIMARY KEY,
					user_id INTEGER NOT NULL,
					last_activity INTEGER NOT NULL,
					created_at INTEGER NOT NULL,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
					) STRICT;`)
				return err
			},
		},
		{
			name: "Create expenses table",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE TABLE IF NOT EXISTS expenses
					(
					id INTEGER PRIMARY KEY,
					user_id INTEGER NOT NULL,
					date INTEGER NOT NULL,
					description TEXT NOT NULL,
					payment_method TEXT NOT NULL DEFAULT '',
					amount INTEGER NOT NULL,
					created_at INTEGER NOT NULL,
					updated_at INTEGER NOT NULL,
					deleted_at INTEGER,
					FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
					) STRICT;`)
				return err
			},
		},
		{
			name: "Index expenses by owner and date",
			up: func(tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `
					CREATE INDEX IF NOT EXISTS idx_expenses_user_date
					ON expenses(user_id, date);`)
				return err
			},
		},
	}

	for i := currentVersion; i < len(migrations); i++ {
		migration := migrations[i]

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %q: %w", migration.name, err)
		}

		if err = migration.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %q failed: %w", migration.name, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			i+1, time.Now().Unix())
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %q: %w", migration.name, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %q: %w", migration.name, err)
		}

		logger.Info("applied migration", "version", i+1, "name", migration.name)
	}

	return nil
}
