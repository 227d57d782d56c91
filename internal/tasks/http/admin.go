package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type AdminHandler struct {
	UserService *service.UserService
}

// HandleList lists every user.
//
//	@Summary	List users
//	@Tags		Admin
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{array}		tasksdk.UserResponse
//	@Failure	401	{object}	tasksdk.MessageResponse	"Not authorized"
//	@Failure	403	{object}	tasksdk.MessageResponse	"Only creators can do this!"
//	@Router		/api/v1/admin/users [get]
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]tasksdk.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSetRole changes a user's role.
//
//	@Summary	Set role
//	@Tags		Admin
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID"
//	@Param		request	body		tasksdk.SetRoleRequest	true	"user, creator or admin"
//	@Success	200		{object}	tasksdk.UserResponse
//	@Failure	400		{object}	tasksdk.MessageResponse	"Invalid role"
//	@Failure	403		{object}	tasksdk.MessageResponse	"Only admins can do this!"
//	@Failure	404		{object}	tasksdk.MessageResponse	"User not found!"
//	@Router		/api/v1/admin/users/{id}/role [patch]
func (h *AdminHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.SetRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.UserService.SetRole(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandleDelete deletes a user and their tasks.
//
//	@Summary	Delete user
//	@Tags		Admin
//	@Security	CookieAuth
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	tasksdk.MessageResponse
//	@Failure	403	{object}	tasksdk.MessageResponse	"Only admins can do this!"
//	@Failure	404	{object}	tasksdk.MessageResponse	"User not found!"
//	@Router		/api/v1/admin/users/{id} [delete]
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), actor, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "User deleted successfully")
}
