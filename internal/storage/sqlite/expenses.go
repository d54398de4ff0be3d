package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

func (s *sqliteStorage) InsertExpense(
	ctx context.Context,
	userID int64,
	date time.Time,
	description, paymentMethod string,
	amount int64,
) (storage.Expense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &storage.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if amount < 0 {
		return nil, &storage.ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	day := util.Date(date)
	now := time.Now()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (user_id, date, description, payment_method, amount, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
	`, userID, day.Unix(), description, paymentMethod, amount, now.Unix(), now.Unix())
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to insert expense: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to get expense id: %w", err))
	}

	return storage.NewExpense(id, userID, day, description, paymentMethod, amount, now, now, nil), nil
}

// GetExpenseByID only resolves active records. A soft-deleted expense is
// indistinguishable from a missing one, which keeps amend links dead
// once the record is deleted.
func (s *sqliteStorage) GetExpenseByID(ctx context.Context, id, userID int64) (storage.Expense, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, description, payment_method, amount, created_at, updated_at, deleted_at
		FROM expenses
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, id, userID)

	return expenseFromRow(row.Scan)
}

func (s *sqliteStorage) UpdateExpense(
	ctx context.Context,
	id, userID int64,
	description, paymentMethod string,
	amount int64,
) error {
	if strings.TrimSpace(description) == "" {
		return &storage.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if amount < 0 {
		return &storage.ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET description = ?, payment_method = ?, amount = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, description, paymentMethod, amount, time.Now().Unix(), id, userID)
	if err != nil {
		return wrapErr(fmt.Errorf("failed to update expense: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapErr(fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return &storage.NotFoundError{}
	}

	return nil
}

// SoftDeleteExpense marks the record deleted. It reports success even
// when nothing matched: delete links are replayable, so the operation
// must be idempotent.
func (s *sqliteStorage) SoftDeleteExpense(ctx context.Context, id, userID int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET deleted_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`, time.Now().Unix(), id, userID)
	if err != nil {
		return wrapErr(fmt.Errorf("failed to delete expense: %w", err))
	}

	return nil
}

// ListExpensesInRange returns the owner's expenses with date between
// start and end, both inclusive, ordered by date then id so output is
// stable across calls.
func (s *sqliteStorage) ListExpensesInRange(
	ctx context.Context,
	userID int64,
	start, end time.Time,
	includeDeleted bool,
) ([]storage.Expense, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, date, description, payment_method, amount, created_at, updated_at, deleted_at
		FROM expenses
		WHERE user_id = ? AND date BETWEEN ? AND ?`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, util.Date(start).Unix(), util.Date(end).Unix())
	if err != nil {
		return nil, wrapErr(fmt.Errorf("failed to list expenses: %w", err))
	}
	defer rows.Close()

	expenses := []storage.Expense{}
	for rows.Next() {
		expense, expenseErr := expenseFromRow(rows.Scan)
		if expenseErr != nil {
			return nil, expenseErr
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, wrapErr(err)
	}

	return expenses, nil
}

func expenseFromRow(scan func(dest ...any) error) (storage.Expense, error) {
	var id int64
	var userID int64
	var date int64
	var description string
	var paymentMethod string
	var amount int64
	var createdAt int64
	var updatedAt int64
	var deletedAt sql.NullInt64

	if err := scan(&id, &userID, &date, &description, &paymentMethod, &amount, &createdAt, &updatedAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{}
		}
		return nil, wrapErr(fmt.Errorf("failed to scan expense: %w", err))
	}

	var deleted *time.Time
	if deletedAt.Valid {
		t := time.Unix(deletedAt.Int64, 0).UTC()
		deleted = &t
	}

	return storage.NewExpense(
		id,
		userID,
		time.Unix(date, 0).UTC(),
		description,
		paymentMethod,
		amount,
		time.Unix(createdAt, 0).UTC(),
		time.Unix(updatedAt, 0).UTC(),
		deleted,
	), nil
}
