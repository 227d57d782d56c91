package guard

import (
	"net/http"
	"strings"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// Extractor locates the raw session token on a request.
type Extractor func(r *http.Request) (string, bool)

// FromCookie reads the token cookie. An empty value counts as absent.
func FromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// FromCookieOrBearer prefers the cookie and falls back to an
// "Authorization: Bearer <token>" header.
func FromCookieOrBearer(r *http.Request) (string, bool) {
	if tok, ok := FromCookie(r); ok {
		return tok, true
	}
	return fromBearer(r)
}

func fromBearer(r *http.Request) (string, bool) {
	scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
