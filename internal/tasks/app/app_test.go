package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		JWTSecret:            testSecret,
		TokenTTL:             time.Hour,
		Issuer:               "tasks-test",
		DatabaseFile:         filepath.Join(dir, "tasks.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		CORSOrigins:          []string{"*"},
		AdminEmail:           "root@example.com",
		AdminPassword:        "correct-horse",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8000,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		VerificationCodeTTL:  10 * time.Minute,
		RateLimits:           httpx.DefaultRateLimitProfiles(),
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestNewWiresBootstrapAdmin(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	_, err = os.Stat(cfg.PepperFile)
	require.NoError(t, err, "pepper file is generated on first start")

	body, err := json.Marshal(tasksdk.LoginRequest{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var auth tasksdk.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))
	require.Equal(t, "admin", auth.Role)
	require.True(t, auth.IsVerified)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: auth.Token})
	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBootstrapAdminLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	cfg := testConfig(t)
	cfg.LogLevel = "info"
	cfg.LogOutput = &logs

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.Equal(t, 1, strings.Count(logs.String(), "bootstrap admin created"), logs.String())
}

func TestNewReopensExistingDatabase(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	cfg.AdminPassword = "a-different-password"
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.db.Close() })

	users, err := second.db.Users().ListIdentities(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1, "bootstrap runs only on an empty database")
}
