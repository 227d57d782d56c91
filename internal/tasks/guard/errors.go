package guard

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

// Denial kinds. Every *Error wraps exactly one of these, so callers can use
// errors.Is without caring about the response message.
var (
	ErrMissingCredential = errors.New("guard: missing credential")
	ErrInvalidCredential = errors.New("guard: invalid credential")
	ErrIdentityNotFound  = errors.New("guard: identity not found")
	ErrPolicyDenied      = errors.New("guard: policy denied")
	ErrInternal          = errors.New("guard: internal error")
)

// Error is a gate denial: the HTTP status and message written to the client.
type Error struct {
	StatusCode int
	Message    string
	Kind       error
}

func (e *Error) Error() string { return e.Kind.Error() + ": " + e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// WriteError writes the denial as {"message": ...}.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteMessage(w, e.StatusCode, e.Message)
}

var (
	NotLoggedIn = &Error{
		StatusCode: http.StatusUnauthorized,
		Message:    "Not authorized, please login!",
		Kind:       ErrMissingCredential,
	}

	TokenFailed = &Error{
		StatusCode: http.StatusUnauthorized,
		Message:    "Not authorized, token failed!",
		Kind:       ErrInvalidCredential,
	}

	UserNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Message:    "User not found!",
		Kind:       ErrIdentityNotFound,
	}

	AdminOnly = &Error{
		StatusCode: http.StatusForbidden,
		Message:    "Only admins can do this!",
		Kind:       ErrPolicyDenied,
	}

	CreatorOnly = &Error{
		StatusCode: http.StatusForbidden,
		Message:    "Only creators can do this!",
		Kind:       ErrPolicyDenied,
	}

	VerifiedOnly = &Error{
		StatusCode: http.StatusForbidden,
		Message:    "Please verify your email address!",
		Kind:       ErrPolicyDenied,
	}

	// ServerError is written when the user store fails for any reason other
	// than a missing record.
	ServerError = &Error{
		StatusCode: http.StatusInternalServerError,
		Message:    "Something went wrong, please try again later",
		Kind:       ErrInternal,
	}
)
