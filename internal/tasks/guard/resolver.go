package guard

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// IdentityStore loads a user without its password hash.
type IdentityStore interface {
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)
}

// Resolver turns a raw session token into the caller's Identity.
type Resolver struct {
	Verifier jwtx.Verifier
	Users    IdentityStore
}

// Resolve verifies token and loads the user it names. Failures are always
// one of the *Error values in this package; the store is not consulted
// unless the token verified.
func (rs *Resolver) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	claims, err := rs.Verifier.Verify(token)
	if err != nil {
		log.Warn("session token rejected", "err", err)
		return domain.Identity{}, TokenFailed
	}
	if claims.UserID == "" {
		log.Warn("session token has no id claim")
		return domain.Identity{}, TokenFailed
	}

	id, err := rs.Users.GetIdentityByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("session token names unknown user", "user_id", claims.UserID)
		return domain.Identity{}, UserNotFound
	case err != nil:
		log.Error("failed to load user", "user_id", claims.UserID, "err", err)
		return domain.Identity{}, ServerError
	}
	return id, nil
}

// Middleware authenticates requests using extract to find the token. On
// success the Identity is attached to the request context; on failure the
// denial is written and next is not called.
func (rs *Resolver) Middleware(extract Extractor) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extract(r)
			if !ok {
				NotLoggedIn.WriteError(w)
				return
			}

			id, err := rs.Resolve(r.Context(), token)
			if err != nil {
				writeDenial(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Protect authenticates with the token cookie only.
func Protect(rs *Resolver) httpx.Middleware {
	return rs.Middleware(FromCookie)
}

// Authenticate authenticates with the token cookie or a bearer header. It is
// used by the profile edit route, which API clients call without cookies.
func Authenticate(rs *Resolver) httpx.Middleware {
	return rs.Middleware(FromCookieOrBearer)
}

func writeDenial(w http.ResponseWriter, err error) {
	var gerr *Error
	if errors.As(err, &gerr) {
		gerr.WriteError(w)
		return
	}
	ServerError.WriteError(w)
}
