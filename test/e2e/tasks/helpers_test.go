//go:build e2e

package tasks_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for tasks service end-to-end tests.
 * This includes container setup, account helpers and assertions.
 */

const (
	testImageName = "tasks-service-test:latest"

	jwtSecret     = "e2e-secret-0123456789abcdef012345"
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	userPassword  = "User1234!"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Tasks Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Tasks Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/tasks/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedRateLimits keeps the e2e suite from tripping the production limits.
var relaxedRateLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_WINDOW_SEC": "60",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

// service is a running tasks container.
type service struct {
	container testcontainers.Container
	baseURL   string
	client    *tasksdk.SDKClient
}

// setupTasksContainer starts the service with relaxed rate limits.
func setupTasksContainer(t *testing.T) *service {
	return startContainer(t, relaxedRateLimits)
}

// setupTasksContainerWithDefaultRateLimits starts the service with the
// production rate limits. Only the rate limit tests should need it.
func setupTasksContainerWithDefaultRateLimits(t *testing.T) *service {
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) *service {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"JWT_SECRET":          jwtSecret,
		"TASKS_DATABASE_FILE": "/data/tasks.db",
		"TASKS_PEPPER_FILE":   "/data/pepper",
		"ADMIN_EMAIL":         adminEmail,
		"ADMIN_PASSWORD":      adminPassword,
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &service{container: container, baseURL: baseURL, client: tasksdk.NewSDKClient(baseURL)}
}

// loginAdmin signs in as the bootstrap admin.
func (s *service) loginAdmin(t *testing.T) *tasksdk.Session {
	t.Helper()

	session, err := s.client.Login(t.Context(), tasksdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err, "bootstrap admin should be able to log in")
	require.Equal(t, "admin", session.User().Role)
	return session
}

// registerUser creates a fresh unverified account.
func (s *service) registerUser(t *testing.T, email string) *tasksdk.Session {
	t.Helper()

	session, err := s.client.Register(t.Context(), tasksdk.RegisterRequest{
		Name:     "E2E User",
		Email:    email,
		Password: userPassword,
	})
	require.NoError(t, err, "register should succeed")
	require.NotEmpty(t, session.Token())
	return session
}

// registerVerifiedUser registers email and completes the verification flow
// using the code the service writes to its log.
func (s *service) registerVerifiedUser(t *testing.T, email string) *tasksdk.Session {
	t.Helper()

	session := s.registerUser(t, email)
	require.NoError(t, session.RequestVerification(t.Context()))
	require.NoError(t, session.VerifyEmail(t.Context(), s.verificationCode(t, email)))
	return session
}

// verificationCode returns the most recent code logged for email.
func (s *service) verificationCode(t *testing.T, email string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		logs, err := s.container.Logs(t.Context())
		if err != nil {
			return false
		}
		defer logs.Close()

		scanner := bufio.NewScanner(logs)
		for scanner.Scan() {
			var line struct {
				Msg   string `json:"msg"`
				Email string `json:"email"`
				Code  string `json:"code"`
			}
			// Docker multiplexed log frames carry an 8 byte header.
			raw := scanner.Bytes()
			if i := indexJSON(raw); i >= 0 {
				raw = raw[i:]
			}
			if json.Unmarshal(raw, &line) != nil {
				continue
			}
			if line.Msg == "verification code issued" && line.Email == email {
				code = line.Code
			}
		}
		return code != ""
	}, 10*time.Second, 200*time.Millisecond, "verification code for %s should be logged", email)

	return code
}

func indexJSON(b []byte) int {
	for i, c := range b {
		if c == '{' {
			return i
		}
	}
	return -1
}

// requireStatus asserts err is an APIError with the given status and message.
func requireStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *tasksdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *tasksdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
