package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

type verificationCodesRepo struct {
	q querier
}

func (r *verificationCodesRepo) UpsertVerificationCode(ctx context.Context, v domain.VerificationCode) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO verification_codes (user_id, secret, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			secret = excluded.secret,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		v.UserID, v.Secret, toMillis(v.ExpiresAt), toMillis(v.CreatedAt),
	)
	return err
}

func (r *verificationCodesRepo) GetVerificationCode(ctx context.Context, userID string) (domain.VerificationCode, error) {
	var (
		v                    domain.VerificationCode
		expiresAt, createdAt int64
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT user_id, secret, expires_at, created_at FROM verification_codes WHERE user_id = ?`,
		userID,
	).Scan(&v.UserID, &v.Secret, &expiresAt, &createdAt)
	if err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}
	v.ExpiresAt = fromMillis(expiresAt)
	v.CreatedAt = fromMillis(createdAt)
	return v, nil
}

func (r *verificationCodesRepo) DeleteVerificationCode(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM verification_codes WHERE user_id = ?`, userID)
	return err
}

func (r *verificationCodesRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
