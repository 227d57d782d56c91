package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultVerificationCodeTTL bounds how long an emailed code is accepted.
const DefaultVerificationCodeTTL = 10 * time.Minute

// VerificationService issues and redeems the six digit email verification
// codes. Each code is a TOTP derived from a per-user secret whose period is
// the code TTL.
type VerificationService struct {
	Store   store.Store
	Mailer  Mailer
	Issuer  string
	CodeTTL time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *VerificationService) issuer() string {
	if s.Issuer == "" {
		return "tasks"
	}
	return s.Issuer
}

func (s *VerificationService) ttl() time.Duration {
	if s.CodeTTL < time.Second {
		return DefaultVerificationCodeTTL
	}
	return s.CodeTTL
}

func (s *VerificationService) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(s.ttl() / time.Second),
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// SendCode issues a fresh code for id, replacing any outstanding one, and
// hands it to the Mailer.
func (s *VerificationService) SendCode(ctx context.Context, id domain.Identity) error {
	if id.IsVerified {
		return ErrAlreadyVerified
	}

	opts := s.opts()
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: id.Email,
		Period:      opts.Period,
		Digits:      opts.Digits,
		Algorithm:   opts.Algorithm,
	})
	if err != nil {
		return fmt.Errorf("failed to generate verification secret: %w", err)
	}

	now := s.now()
	code, err := totp.GenerateCodeCustom(key.Secret(), now, opts)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	err = s.Store.VerificationCodes().UpsertVerificationCode(ctx, domain.VerificationCode{
		UserID:    id.ID,
		Secret:    key.Secret(),
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.Mailer.SendVerificationCode(ctx, id.Email, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// Verify redeems the code sent to id and marks the user verified. A code is
// single use.
func (s *VerificationService) Verify(ctx context.Context, id domain.Identity, req VerifyCodeRequest) error {
	if id.IsVerified {
		return ErrAlreadyVerified
	}
	if err := validate(req); err != nil {
		return err
	}

	now := s.now()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		vc, err := tx.VerificationCodes().GetVerificationCode(ctx, id.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		if err != nil {
			return fmt.Errorf("failed to load verification code: %w", err)
		}
		if vc.Expired(now) {
			return ErrCodeExpired
		}

		ok, err := totp.ValidateCustom(req.Code, vc.Secret, now, s.opts())
		if err != nil || !ok {
			slogx.FromContext(ctx).Info("verification code rejected")
			return ErrInvalidCode
		}

		if err := tx.Users().MarkVerified(ctx, id.ID); err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
		return tx.VerificationCodes().DeleteVerificationCode(ctx, id.ID)
	})
}
