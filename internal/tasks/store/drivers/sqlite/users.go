package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

const identityColumns = `id, name, email, role, photo, bio, is_verified, created_at, updated_at`

type usersRepo struct {
	q querier
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanIdentity reads identityColumns, plus any extra destinations appended
// after them. The stored role is re-validated so a corrupt row never yields
// an unknown role.
func scanIdentity(row rowScanner, extra ...any) (domain.Identity, error) {
	var (
		id                   domain.Identity
		role                 string
		verified             int
		createdAt, updatedAt int64
	)
	dest := append([]any{
		&id.ID, &id.Name, &id.Email, &role, &id.Photo, &id.Bio, &verified, &createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Identity{}, err
	}

	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("user %s: %w", id.ID, err)
	}
	id.Role = r
	id.IsVerified = verified != 0
	id.CreatedAt = fromMillis(createdAt)
	id.UpdatedAt = fromMillis(updatedAt)
	return id, nil
}

func (r *usersRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM users WHERE id = ?`, id)
	ident, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return ident, nil
}

func (r *usersRepo) getUser(ctx context.Context, where string, arg any) (domain.User, error) {
	var u domain.User
	row := r.q.QueryRowContext(ctx,
		`SELECT `+identityColumns+`, password_hash FROM users WHERE `+where, arg)
	ident, err := scanIdentity(row, &u.PasswordHash)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Identity = ident
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if !u.Role.Valid() {
		return fmt.Errorf("create user: %w: %q", domain.ErrInvalidRole, u.Role)
	}

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, photo, bio, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, string(u.Role),
		u.Photo, u.Bio, boolToInt(u.IsVerified), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+identityColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Identity, 0)
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ident)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE users SET
			name = COALESCE(?, name),
			photo = COALESCE(?, photo),
			bio = COALESCE(?, bio),
			updated_at = ?
		WHERE id = ?`,
		optionalString(p.Name), optionalString(p.Photo), optionalString(p.Bio),
		toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("update role: %w: %q", domain.ErrInvalidRole, role)
	}
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, updated_at = ? WHERE id = ?`,
		toMillis(time.Now()), userID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return expectOne(r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func optionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
