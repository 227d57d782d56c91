package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

type UserHandler struct {
	UserService *service.UserService
}

// HandleMe returns the caller.
//
//	@Summary	Current user
//	@Tags		Users
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	tasksdk.UserResponse
//	@Failure	401	{object}	tasksdk.MessageResponse	"Not authorized"
//	@Failure	404	{object}	tasksdk.MessageResponse	"User not found"
//	@Router		/api/v1/user [get]
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(id))
}

// HandleUpdateProfile edits name, photo and bio.
//
//	@Summary	Update profile
//	@Tags		Users
//	@Security	CookieAuth
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		tasksdk.UpdateProfileRequest	true	"Fields to change"
//	@Success	200		{object}	tasksdk.UserResponse
//	@Failure	400		{object}	tasksdk.MessageResponse	"Invalid input"
//	@Failure	401		{object}	tasksdk.MessageResponse	"Not authorized"
//	@Router		/api/v1/user [patch]
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.UserService.UpdateProfile(r.Context(), id.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandleChangePassword replaces the caller's password.
//
//	@Summary	Change password
//	@Tags		Users
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		tasksdk.ChangePasswordRequest	true	"Current and new password"
//	@Success	200		{object}	tasksdk.MessageResponse
//	@Failure	400		{object}	tasksdk.MessageResponse	"Invalid input or wrong password"
//	@Failure	401		{object}	tasksdk.MessageResponse	"Not authorized"
//	@Router		/api/v1/change-password [patch]
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), id.ID, req); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Password changed successfully")
}
