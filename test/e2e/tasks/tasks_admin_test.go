//go:build e2e

package tasks_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

// TestAdminManagesUsers covers listing, role changes and deletion.
func TestAdminManagesUsers(t *testing.T) {
	svc := setupTasksContainer(t)
	ctx := t.Context()

	admin := svc.loginAdmin(t)
	member := svc.registerVerifiedUser(t, "member@example.com")
	_, err := member.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "owned by member"})
	require.NoError(t, err)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = admin.SetRole(ctx, member.User().ID, "superuser")
	requireStatus(t, err, http.StatusBadRequest, "")

	promoted, err := admin.SetRole(ctx, member.User().ID, "creator")
	require.NoError(t, err)
	require.Equal(t, "creator", promoted.Role)

	users, err = member.ListUsers(ctx)
	require.NoError(t, err, "creators can list users")
	require.Len(t, users, 2)

	_, err = admin.SetRole(ctx, admin.User().ID, "user")
	requireStatus(t, err, http.StatusBadRequest, "")

	err = admin.DeleteUser(ctx, admin.User().ID)
	requireStatus(t, err, http.StatusBadRequest, "")

	require.NoError(t, admin.DeleteUser(ctx, member.User().ID))

	err = admin.DeleteUser(ctx, member.User().ID)
	requireStatus(t, err, http.StatusNotFound, "User not found!")

	users, err = admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
