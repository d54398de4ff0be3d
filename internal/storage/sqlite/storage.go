package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

const defaultQueryTimeout = 5 * time.Second

type Config struct {
	Source          string        `toml:"source" env:"EXPENSETRACK_DB"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime util.Duration `toml:"conn_max_lifetime"`
	QueryTimeout    util.Duration `toml:"query_timeout"`
	JournalMode     string        `toml:"journal_mode"`
	BusyTimeout     int           `toml:"busy_timeout"`
}

type sqliteStorage struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func New(dbConfig Config) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbConfig.Source)
	if err != nil {
		return nil, err
	}

	if dbConfig.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}

	if dbConfig.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}

	if dbConfig.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime.Std())
	}

	ctx := context.Background()

	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	if dbConfig.JournalMode != "" {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA journal_mode = %s", dbConfig.JournalMode))
		if err != nil {
			return nil, fmt.Errorf("failed to set journal_mode: %w", err)
		}
	}

	if dbConfig.BusyTimeout > 0 {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", dbConfig.BusyTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
		}
	}

	queryTimeout := dbConfig.QueryTimeout.Std()
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	return &sqliteStorage{db: db, queryTimeout: queryTimeout}, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// opCtx bounds every store call so a wedged database surfaces as an
// UnavailableError instead of a hung request.
func (s *sqliteStorage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// wrapErr converts driver failures into storage.UnavailableError while
// letting the typed storage errors pass through untouched.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var notFound *storage.NotFoundError
	var validation *storage.ValidationError
	if errors.As(err, &notFound) || errors.As(err, &validation) {
		return err
	}

	return &storage.UnavailableError{Cause: err}
}
