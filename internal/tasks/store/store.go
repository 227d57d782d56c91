package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so transactions can't be nested by accident.
type Store interface {
	Users() Users
	Tasks() Tasks
	VerificationCodes() VerificationCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetIdentityByID returns the user without secret fields. The password
	// hash is never read from the database on this path.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetUserByID returns the full record, password hash included.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used at login. Emails are matched case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user; ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	ListIdentities(ctx context.Context) ([]domain.Identity, error)

	UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) error
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
	UpdateRole(ctx context.Context, userID string, role domain.Role) error
	MarkVerified(ctx context.Context, userID string) error

	// DeleteUser cascades to tasks and verification codes (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasksByUser returns the user's tasks, newest first.
	ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error)

	// UpdateTask overwrites the mutable fields of t and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}

type VerificationCodes interface {
	// UpsertVerificationCode replaces any outstanding code for the user.
	UpsertVerificationCode(ctx context.Context, v domain.VerificationCode) error
	GetVerificationCode(ctx context.Context, userID string) (domain.VerificationCode, error)
	DeleteVerificationCode(ctx context.Context, userID string) error

	// DeleteExpiredVerificationCodes is housekeeping; it returns the number
	// of rows removed.
	DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error)
}
