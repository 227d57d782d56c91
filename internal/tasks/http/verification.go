package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

type VerificationHandler struct {
	VerificationService *service.VerificationService
}

// HandleSendCode emails a fresh verification code to the caller.
//
//	@Summary	Request email verification
//	@Tags		Verification
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	tasksdk.MessageResponse
//	@Failure	400	{object}	tasksdk.MessageResponse	"Already verified"
//	@Failure	401	{object}	tasksdk.MessageResponse	"Not authorized"
//	@Router		/api/v1/verify-email [post]
func (h *VerificationHandler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.VerificationService.SendCode(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Verification code sent to your email")
}

// HandleVerify redeems a verification code.
//
//	@Summary	Verify email
//	@Tags		Verification
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		tasksdk.VerifyCodeRequest	true	"Six digit code"
//	@Success	200		{object}	tasksdk.MessageResponse
//	@Failure	400		{object}	tasksdk.MessageResponse	"Invalid or expired code"
//	@Failure	401		{object}	tasksdk.MessageResponse	"Not authorized"
//	@Router		/api/v1/verify-user [post]
func (h *VerificationHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.VerifyCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.VerificationService.Verify(r.Context(), id, req); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "User verified successfully")
}
