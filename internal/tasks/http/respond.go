package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/guard"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

const msgServerError = "Something went wrong, please try again later"

func toUserResponse(id domain.Identity) tasksdk.UserResponse {
	return tasksdk.UserResponse{
		ID:         id.ID,
		Name:       id.Name,
		Email:      id.Email,
		Role:       id.Role.String(),
		Photo:      id.Photo,
		Bio:        id.Bio,
		IsVerified: id.IsVerified,
		CreatedAt:  id.CreatedAt,
		UpdatedAt:  id.UpdatedAt,
	}
}

func toTaskResponse(t domain.Task) tasksdk.TaskResponse {
	return tasksdk.TaskResponse{
		ID:          t.ID,
		User:        t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// identity returns the caller resolved by the guard middleware. Routes that
// call it are always mounted behind Protect or Authenticate.
func identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := guard.IdentityFromContext(r.Context())
	if !ok {
		guard.NotLoggedIn.WriteError(w)
	}
	return id, ok
}

// writeError maps service errors to responses. Unknown errors are logged
// and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, httpx.ErrBadBody):
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrWrongPassword):
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid password!")
	case errors.Is(err, service.ErrUserNotFound):
		guard.UserNotFound.WriteError(w)
	case errors.Is(err, service.ErrSelfModification):
		httpx.WriteMessage(w, http.StatusBadRequest, "You cannot change or delete your own account")
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Task not found!")
	case errors.Is(err, service.ErrNotTaskOwner):
		httpx.WriteMessage(w, http.StatusForbidden, "Not authorized to access this task")
	case errors.Is(err, service.ErrAlreadyVerified):
		httpx.WriteMessage(w, http.StatusBadRequest, "User is already verified")
	case errors.Is(err, service.ErrInvalidCode):
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid verification code")
	case errors.Is(err, service.ErrCodeExpired):
		httpx.WriteMessage(w, http.StatusBadRequest, "Verification code expired")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteMessage(w, http.StatusInternalServerError, msgServerError)
	}
}
