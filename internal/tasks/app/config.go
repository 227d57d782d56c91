package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
)

// ErrMissingSecret is returned by Validate when JWT_SECRET is unset.
var ErrMissingSecret = errors.New("JWT_SECRET is required")

type Config struct {
	JWTSecret string        // Required: HMAC secret for session tokens (min 32 bytes)
	TokenTTL  time.Duration // Optional: session lifetime (default: 30 days)
	Issuer    string        // Optional: issuer claim for tokens (default: tasks)

	DatabaseFile string // Optional: path to SQLite database file (default: ./tasks.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	CORSOrigins  []string // Optional: comma separated allowed origins (default: *)
	StaticDir    string   // Optional: directory served for unmatched GET requests
	CookieSecure bool     // Optional: mark the session cookie Secure (default: false)

	AdminEmail    string // Optional: bootstrap admin created on an empty database
	AdminPassword string // Optional: password for the bootstrap admin

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	VerificationCodeTTL  time.Duration // Verification code lifetime (default: 10m)

	RateLimits httpx.RateLimitProfiles

	LogOutput io.Writer // Optional: log destination (default: stdout)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenTTL:             getEnvDurationOrDefault("TOKEN_TTL", 30*24*time.Hour),
		Issuer:               getEnvOrDefault("TASKS_ISSUER", "tasks"),
		DatabaseFile:         getEnvOrDefault("TASKS_DATABASE_FILE", "tasks.db"),
		PepperFile:           getEnvOrDefault("TASKS_PEPPER_FILE", "pepper"),
		CORSOrigins:          splitList(getEnvOrDefault("CORS_ORIGIN", "*")),
		StaticDir:            os.Getenv("STATIC_DIR"),
		CookieSecure:         getEnvBoolOrDefault("COOKIE_SECURE", false),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
		VerificationCodeTTL:  getEnvDurationOrDefault("VERIFICATION_CODE_TTL", service.DefaultVerificationCodeTTL),
		RateLimits:           httpx.RateLimitProfilesFromEnv(),
	}
}

// Validate reports configuration the service cannot start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if len(c.JWTSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
