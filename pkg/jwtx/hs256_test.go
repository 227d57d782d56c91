package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newHS256(t *testing.T, opts ...jwtx.Option) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256(testSecret, "tasks-test", opts...)
	require.NoError(t, err)
	return h
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), "tasks")
	require.ErrorIs(t, err, jwtx.ErrSecretTooWeak)
}

func TestSignAndVerify(t *testing.T) {
	h := newHS256(t)
	now := time.Now()

	token, err := h.Sign(jwtx.NewSessionClaims("u1", "tasks-test", time.Hour, now))
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "tasks-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestSignRequiresUserID(t *testing.T) {
	h := newHS256(t)
	_, err := h.Sign(jwtx.NewSessionClaims("", "tasks-test", time.Hour, time.Now()))
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestVerifyFailures(t *testing.T) {
	h := newHS256(t)
	now := time.Now()

	t.Run("empty token", func(t *testing.T) {
		_, err := h.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewSessionClaims("u1", "tasks-test", time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("leeway tolerates small skew", func(t *testing.T) {
		lenient := newHS256(t, jwtx.WithLeeway(time.Minute))
		token, err := lenient.Sign(jwtx.NewSessionClaims("u1", "tasks-test", time.Second, now.Add(-30*time.Second)))
		require.NoError(t, err)

		_, err = lenient.Verify(token)
		require.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "tasks-test")
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewSessionClaims("u1", "tasks-test", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewSessionClaims("u1", "someone-else", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("alg none rejected", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u1", "tasks-test", time.Hour, now)
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.Error(t, err)
	})

	t.Run("missing exp claim", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u1", "tasks-test", time.Hour, now)
		claims.ExpiresAt = nil
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("missing id claim", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "tasks-test",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		token, err := raw.SignedString(testSecret)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestVerifyUsesInjectedClock(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	current := issued
	h := newHS256(t, jwtx.WithClock(func() time.Time { return current }))

	token, err := h.Sign(jwtx.NewSessionClaims("u1", "tasks-test", time.Hour, issued))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.NoError(t, err)

	current = issued.Add(2 * time.Hour)
	_, err = h.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
