// Package jwtx signs and verifies the session tokens handed out at login.
package jwtx

import "errors"

// Signer is anything that can mint a session token.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")
	ErrIssuer        = errors.New("jwtx: issuer mismatch")
	ErrExpired       = errors.New("jwtx: token expired")
	ErrNotYetValid   = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim  = errors.New("jwtx: invalid claims")
	ErrSecretTooWeak = errors.New("jwtx: secret must be at least 32 bytes")
)
