//go:build e2e

package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies liveness and readiness on a fresh container.
func TestHealthEndpoints(t *testing.T) {
	svc := setupTasksContainer(t)

	health, err := svc.client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = svc.client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
