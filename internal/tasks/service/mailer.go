package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// Mailer delivers verification codes to users.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogMailer writes codes to the log instead of sending mail. It is the
// default for local development and tests.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	l := m.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Info("verification code issued", "email", email, "code", code)
	return nil
}
