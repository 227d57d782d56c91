package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret NewHS256 accepts.
const MinSecretLength = 32

// HS256 signs and verifies tokens with a shared HMAC-SHA256 secret. It
// implements both Signer and Verifier.
type HS256 struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// Option tweaks an HS256.
type Option func(*HS256)

// WithLeeway allows clock skew when checking exp/nbf.
func WithLeeway(d time.Duration) Option {
	return func(h *HS256) { h.leeway = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *HS256) { h.now = now }
}

// NewHS256 creates a signer/verifier for secret. An empty issuer disables
// the issuer check.
func NewHS256(secret []byte, issuer string, opts ...Option) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooWeak
	}

	h := &HS256{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Issuer returns the issuer stamped on minted tokens.
func (h *HS256) Issuer() string { return h.issuer }

// Sign turns claims into a signed token string.
func (h *HS256) Sign(claims Claims) (string, error) {
	if claims.UserID == "" {
		return "", ErrInvalidClaim
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Verify checks signature, algorithm, issuer and expiry.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMalformed
	}

	// Expiry is checked below with our own clock and leeway.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(h.now().UTC(), h.leeway); err != nil {
		return Claims{}, err
	}
	if claims.UserID == "" {
		return Claims{}, ErrInvalidClaim
	}

	return *claims, nil
}
