package storage

import (
	"context"
	"fmt"
	"time"

	"expensetrack/internal/logger"
)

// NotFoundError reports that no record matched an id/owner pair. It is
// deliberately free of detail so handlers can answer with a generic
// message that does not leak another user's records.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "record not found"
}

// ValidationError reports input that was rejected before touching the
// database, such as a non-numeric amount or an empty description.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnavailableError wraps a connection or transaction failure. The write
// never happened; callers surface a generic failure notice.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s", e.Cause.Error())
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

type User interface {
	ID() int64
	Username() string
	PasswordHash() string
	CreatedAt() time.Time
}

type user struct {
	id           int64
	username     string
	passwordHash string
	createdAt    time.Time
}

func NewUser(id int64, username, passwordHash string, createdAt time.Time) User {
	return user{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u user) ID() int64            { return u.id }
func (u user) Username() string     { return u.username }
func (u user) PasswordHash() string { return u.passwordHash }
func (u user) CreatedAt() time.Time { return u.createdAt }

type Session interface {
	ID() string
	UserID() int64
	LastActivity() time.Time
	CreatedAt() time.Time
}

type session struct {
	id           string
	userID       int64
	lastActivity time.Time
	createdAt    time.Time
}

func NewSession(id string, userID int64, lastActivity, createdAt time.Time) Session {
	return session{
		id:           id,
		userID:       userID,
		lastActivity: lastActivity,
		createdAt:    createdAt,
	}
}

func (s session) ID() string              { return s.id }
func (s session) UserID() int64           { return s.userID }
func (s session) LastActivity() time.Time { return s.lastActivity }
func (s session) CreatedAt() time.Time    { return s.createdAt }

// Expense is one recorded transaction. Amount is stored in cents;
// Date is the calendar day the expense is attributed to, not the day
// it was recorded. A non-nil DeletedAt means the record is soft deleted
// and excluded from retrieval and aggregation.
type Expense interface {
	ID() int64
	UserID() int64
	Date() time.Time
	Description() string
	PaymentMethod() string
	Amount() int64
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DeletedAt() *time.Time
}

type expense struct {
	id            int64
	userID        int64
	date          time.Time
	description   string
	paymentMethod string
	amount        int64
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

func NewExpense(
	id, userID int64,
	date time.Time,
	description, paymentMethod string,
	amount int64,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) Expense {
	return &expense{
		id:            id,
		userID:        userID,
		date:          date,
		description:   description,
		paymentMethod: paymentMethod,
		amount:        amount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (e *expense) ID() int64             { return e.id }
func (e *expense) UserID() int64         { return e.userID }
func (e *expense) Date() time.Time       { return e.date }
func (e *expense) Description() string   { return e.description }
func (e *expense) PaymentMethod() string { return e.paymentMethod }
func (e *expense) Amount() int64         { return e.amount }
func (e *expense) CreatedAt() time.Time  { return e.createdAt }
func (e *expense) UpdatedAt() time.Time  { return e.updatedAt }
func (e *expense) DeletedAt() *time.Time { return e.deletedAt }

type Storage interface {
	// Migrations
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error

	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)

	// Sessions. GetSession only returns sessions whose last activity is
	// within the idle timeout; TouchSession refreshes it.
	CreateSession(ctx context.Context, userID int64, sessionID string) (Session, error)
	GetSession(ctx context.Context, sessionID string, idleTimeout time.Duration) (Session, error)
	TouchSession(ctx context.Context, sessionID string) error
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteIdleSessions(ctx context.Context, idleTimeout time.Duration) error

	// Expenses
	InsertExpense(ctx context.Context, userID int64, date time.Time, description, paymentMethod string, amount int64) (Expense, error)
	GetExpenseByID(ctx context.Context, id, userID int64) (Expense, error)
	UpdateExpense(ctx context.Context, id, userID int64, description, paymentMethod string, amount int64) error
	SoftDeleteExpense(ctx context.Context, id, userID int64) error
	ListExpensesInRange(ctx context.Context, userID int64, start, end time.Time, includeDeleted bool) ([]Expense, error)

	// Resource management
	Close() error
}
