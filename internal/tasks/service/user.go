package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// Session is a freshly minted session token for an identity.
type Session struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

type UserService struct {
	Store    store.Store
	Hasher   cryptox.PasswordHasher
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TokenTTL time.Duration
}

func (s *UserService) ttl() time.Duration {
	if s.TokenTTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TokenTTL
}

func (s *UserService) newSession(id domain.Identity) (Session, error) {
	now := time.Now()
	claims := jwtx.NewSessionClaims(id.ID, s.Issuer, s.ttl(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{Identity: id, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Register creates an unverified user with the user role and logs them in.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return Session{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		Identity: domain.Identity{
			ID:        idx.New().String(),
			Name:      req.Name,
			Email:     req.Email,
			Role:      domain.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return s.newSession(u.Identity)
}

// Login checks the password and mints a session. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return Session{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(req.Password, u.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", "user_id", u.ID)
		return Session{}, ErrInvalidCredentials
	}

	return s.newSession(u.Identity)
}

// LoginStatus reports whether token is a valid session token. The user
// store is not consulted.
func (s *UserService) LoginStatus(token string) bool {
	if token == "" {
		return false
	}
	_, err := s.Verifier.Verify(token)
	return err == nil
}

func (s *UserService) GetIdentity(ctx context.Context, userID string) (domain.Identity, error) {
	id, err := s.Store.Users().GetIdentityByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, ErrUserNotFound
	}
	return id, err
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (domain.Identity, error) {
	if err := validate(req); err != nil {
		return domain.Identity{}, err
	}

	var out domain.Identity
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, req.toDomain()); err != nil {
			return err
		}
		var err error
		out, err = tx.Users().GetIdentityByID(ctx, userID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(req.CurrentPassword, u.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.Hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", userID)
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.Identity, error) {
	return s.Store.Users().ListIdentities(ctx)
}

// SetRole changes another user's role.
func (s *UserService) SetRole(ctx context.Context, actor domain.Identity, userID string, req SetRoleRequest) (domain.Identity, error) {
	if err := validate(req); err != nil {
		return domain.Identity{}, err
	}
	if actor.ID == userID {
		return domain.Identity{}, ErrSelfModification
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.Identity{}, &ValidationError{Err: err}
	}

	var out domain.Identity
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateRole(ctx, userID, role); err != nil {
			return err
		}
		var err error
		out, err = tx.Users().GetIdentityByID(ctx, userID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("set role: %w", err)
	}

	slogx.FromContext(ctx).Info("role changed", "target_user_id", userID, "role", role)
	return out, nil
}

// DeleteUser removes another user and, through the schema, their tasks.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Identity, userID string) error {
	if actor.ID == userID {
		return ErrSelfModification
	}
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	slogx.FromContext(ctx).Info("user deleted", "target_user_id", userID)
	return nil
}
