package guard

import (
	"context"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type identityKey struct{}

// WithIdentity attaches a resolved identity to ctx. The user id is also
// recorded for per-user rate limiting, and the request logger gains a
// user_id attribute.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, id)
	ctx = httpx.WithUserID(ctx, id.ID)
	return slogx.With(ctx, "user_id", id.ID)
}

// IdentityFromContext returns the identity attached by Protect or
// Authenticate.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}
