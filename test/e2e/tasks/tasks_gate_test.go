//go:build e2e

package tasks_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestGateMessages checks each denial the request gate can produce.
func TestGateMessages(t *testing.T) {
	svc := setupTasksContainer(t)
	ctx := t.Context()

	t.Run("missing token", func(t *testing.T) {
		_, err := svc.client.NewSession("").Me(ctx)
		requireStatus(t, err, http.StatusUnauthorized, "Not authorized, please login!")
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := svc.client.NewSession("garbage.token.value").Me(ctx)
		requireStatus(t, err, http.StatusUnauthorized, "Not authorized, token failed!")
	})

	t.Run("unverified user cannot create tasks", func(t *testing.T) {
		session := svc.registerUser(t, "unverified@example.com")
		_, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "nope"})
		requireStatus(t, err, http.StatusForbidden, "Please verify your email address!")
	})

	t.Run("plain user cannot list users", func(t *testing.T) {
		session := svc.registerUser(t, "plain@example.com")
		_, err := session.ListUsers(ctx)
		requireStatus(t, err, http.StatusForbidden, "Only creators can do this!")
	})

	t.Run("creator cannot change roles", func(t *testing.T) {
		admin := svc.loginAdmin(t)
		creator := svc.registerUser(t, "creator@example.com")
		_, err := admin.SetRole(ctx, creator.User().ID, "creator")
		require.NoError(t, err)

		_, err = creator.SetRole(ctx, admin.User().ID, "user")
		requireStatus(t, err, http.StatusForbidden, "Only admins can do this!")
	})

	t.Run("deleted user", func(t *testing.T) {
		admin := svc.loginAdmin(t)
		doomed := svc.registerUser(t, "doomed@example.com")
		require.NoError(t, admin.DeleteUser(ctx, doomed.User().ID))

		_, err := doomed.Me(ctx)
		requireStatus(t, err, http.StatusNotFound, "User not found!")
	})
}
