package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, email string, role domain.Role) domain.User {
	t.Helper()

	u := domain.User{
		Identity: domain.Identity{
			ID:    idx.New().String(),
			Name:  "Test User",
			Email: email,
			Role:  role,
		},
		PasswordHash: "$argon2id$dummy",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := seedUser(t, s, "Alice@Example.com", domain.RoleUser)

	t.Run("identity omits password hash", func(t *testing.T) {
		ident, err := s.Users().GetIdentityByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.ID, ident.ID)
		require.Equal(t, "alice@example.com", ident.Email)
		require.Equal(t, domain.RoleUser, ident.Role)
		require.False(t, ident.IsVerified)
		require.False(t, ident.CreatedAt.IsZero())
	})

	t.Run("lookup by email is case-insensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, " ALICE@example.com ")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "$argon2id$dummy", got.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		dup.Email = "alice@EXAMPLE.com"
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Users().GetIdentityByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Users().MarkVerified(ctx, "missing"), store.ErrNotFound)
	})

	t.Run("profile update keeps unset fields", func(t *testing.T) {
		bio := "hello"
		require.NoError(t, s.Users().UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Bio: &bio}))

		ident, err := s.Users().GetIdentityByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "hello", ident.Bio)
		require.Equal(t, "Test User", ident.Name)
	})

	t.Run("role must be known", func(t *testing.T) {
		err := s.Users().UpdateRole(ctx, u.ID, domain.Role("root"))
		require.ErrorIs(t, err, domain.ErrInvalidRole)

		require.NoError(t, s.Users().UpdateRole(ctx, u.ID, domain.RoleCreator))
		ident, err := s.Users().GetIdentityByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleCreator, ident.Role)
	})

	t.Run("schema rejects unknown role", func(t *testing.T) {
		_, err := s.db.ExecContext(ctx, `UPDATE users SET role = 'root' WHERE id = ?`, u.ID)
		require.Error(t, err)
	})

	t.Run("mark verified and change password", func(t *testing.T) {
		require.NoError(t, s.Users().MarkVerified(ctx, u.ID))
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$argon2id$new"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.IsVerified)
		require.Equal(t, "$argon2id$new", got.PasswordHash)
	})

	t.Run("list", func(t *testing.T) {
		seedUser(t, s, "bob@example.com", domain.RoleAdmin)
		list, err := s.Users().ListIdentities(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
	})
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com", domain.RoleUser)

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	due := base.Add(48 * time.Hour)

	first := domain.Task{
		ID: idx.New().String(), UserID: owner.ID, Title: "first",
		Status: domain.TaskActive, Priority: domain.PriorityLow,
		CreatedAt: base,
	}
	second := domain.Task{
		ID: idx.New().String(), UserID: owner.ID, Title: "second", DueDate: &due,
		Status: domain.TaskActive, Priority: domain.PriorityHigh,
		CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, s.Tasks().CreateTask(ctx, first))
	require.NoError(t, s.Tasks().CreateTask(ctx, second))

	list, err := s.Tasks().ListTasksByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Title, "newest first")
	require.NotNil(t, list[0].DueDate)
	require.True(t, due.Equal(*list[0].DueDate))
	require.Nil(t, list[1].DueDate)

	got, err := s.Tasks().GetTaskByID(ctx, first.ID)
	require.NoError(t, err)
	got.Completed = true
	got.Status = domain.TaskInactive
	require.NoError(t, s.Tasks().UpdateTask(ctx, got))

	got, err = s.Tasks().GetTaskByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, got.Completed)
	require.Equal(t, domain.TaskInactive, got.Status)

	require.NoError(t, s.Tasks().DeleteTask(ctx, first.ID))
	require.ErrorIs(t, s.Tasks().DeleteTask(ctx, first.ID), store.ErrNotFound)
	_, err = s.Tasks().GetTaskByID(ctx, first.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("deleting the owner cascades", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, owner.ID))
		list, err := s.Tasks().ListTasksByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestVerificationCodes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "v@example.com", domain.RoleUser)
	now := time.Now()

	require.NoError(t, s.VerificationCodes().UpsertVerificationCode(ctx, domain.VerificationCode{
		UserID: u.ID, Secret: "FIRST", ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, s.VerificationCodes().UpsertVerificationCode(ctx, domain.VerificationCode{
		UserID: u.ID, Secret: "SECOND", ExpiresAt: now.Add(10 * time.Minute),
	}))

	v, err := s.VerificationCodes().GetVerificationCode(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "SECOND", v.Secret, "upsert replaces the outstanding code")
	require.False(t, v.Expired(now))

	n, err := s.VerificationCodes().DeleteExpiredVerificationCodes(ctx, now)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.VerificationCodes().DeleteExpiredVerificationCodes(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.VerificationCodes().GetVerificationCode(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{Identity: domain.Identity{
			ID: idx.New().String(), Name: "x", Email: "tx@example.com", Role: domain.RoleUser,
		}, PasswordHash: "h"}
		require.NoError(t, tx.Users().CreateUser(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty, "rolled back")

	err = s.WithTx(ctx, func(tx store.Tx) error {
		require.ErrorIs(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), sql.ErrTxDone)
		return nil
	})
	require.NoError(t, err)
}
