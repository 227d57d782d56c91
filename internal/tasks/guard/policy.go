package guard

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

// Policy decides whether an identity may proceed.
type Policy func(domain.Identity) bool

// Require builds a gate that lets a request through only when its context
// carries an Identity satisfying allow. Otherwise it writes denial. Gates
// never touch the token or the store and may be stacked in any order.
func Require(allow Policy, denial *Error) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || !allow(id) {
				denial.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin admits admins only.
func RequireAdmin(next http.Handler) http.Handler {
	return Require(domain.Identity.IsAdmin, AdminOnly)(next)
}

// RequireCreator admits creators and admins.
func RequireCreator(next http.Handler) http.Handler {
	return Require(domain.Identity.IsCreator, CreatorOnly)(next)
}

// RequireVerified admits users who have confirmed their email address.
func RequireVerified(next http.Handler) http.Handler {
	return Require(isVerified, VerifiedOnly)(next)
}

func isVerified(id domain.Identity) bool { return id.IsVerified }
