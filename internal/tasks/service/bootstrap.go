package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type BootstrapService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
}

// EnsureAdmin creates a verified admin account when the user table is empty.
// It reports whether an account was created. An empty email disables it.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" {
		return false, nil
	}
	l := slogx.FromContext(ctx)

	req := RegisterRequest{Name: "Administrator", Email: normalizeEmail(email), Password: password}
	if err := validate(req); err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: hash password: %w", err)
	}

	created := false
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil || !empty {
			return err
		}

		now := time.Now().UTC()
		created = true
		return tx.Users().CreateUser(ctx, domain.User{
			Identity: domain.Identity{
				ID:         idx.New().String(),
				Name:       req.Name,
				Email:      req.Email,
				Role:       domain.RoleAdmin,
				IsVerified: true,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
			PasswordHash: hash,
		})
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	if created {
		l.Info("bootstrap admin created", "email", req.Email)
	}
	return created, nil
}
