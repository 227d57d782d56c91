package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/guard"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type AuthHandler struct {
	UserService *service.UserService
	Cookie      CookieConfig
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, code int, sess service.Session) {
	h.Cookie.set(w, sess.Token, sess.ExpiresAt)
	httpx.NoCache(w)
	httpx.WriteJSON(w, code, tasksdk.AuthResponse{
		UserResponse: toUserResponse(sess.Identity),
		Token:        sess.Token,
	})
}

// HandleRegister creates an account and logs it in.
//
//	@Summary		Register
//	@Description	Creates an unverified user with the "user" role and sets the session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	tasksdk.AuthResponse
//	@Failure		400		{object}	tasksdk.MessageResponse	"Invalid input or email taken"
//	@Failure		429		{object}	tasksdk.MessageResponse	"Rate limited"
//	@Router			/api/v1/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusCreated, sess)
}

// HandleLogin checks credentials and sets the session cookie.
//
//	@Summary		Login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	tasksdk.AuthResponse
//	@Failure		400		{object}	tasksdk.MessageResponse	"Invalid input"
//	@Failure		401		{object}	tasksdk.MessageResponse	"Invalid email or password"
//	@Failure		429		{object}	tasksdk.MessageResponse	"Rate limited"
//	@Router			/api/v1/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.UserService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, http.StatusOK, sess)
}

// HandleLogout clears the session cookie.
//
//	@Summary	Logout
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	tasksdk.MessageResponse
//	@Router		/api/v1/logout [get]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.clear(w)
	httpx.WriteMessage(w, http.StatusOK, "User logged out")
}

// HandleLoginStatus reports whether the session cookie holds a valid token.
//
//	@Summary		Login status
//	@Description	Returns true when the token cookie verifies. The user record is not checked.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{boolean}	boolean
//	@Router			/api/v1/login-status [get]
func (h *AuthHandler) HandleLoginStatus(w http.ResponseWriter, r *http.Request) {
	token, _ := guard.FromCookie(r)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, h.UserService.LoginStatus(token))
}
