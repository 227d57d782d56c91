package tasksdk

import (
	"context"
	"net/http"
)

// Session performs requests on behalf of a logged-in user.
type Session struct {
	client *SDKClient
	token  string
	user   UserResponse
}

// Token returns the session token.
func (s *Session) Token() string { return s.token }

// User returns the user as of login or register.
func (s *Session) User() UserResponse { return s.user }

// Logout clears the session cookie server side. The token itself stays
// valid until it expires.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/logout", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Me returns the current user.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	return s.userRequest(ctx, http.MethodGet, "/user", nil, false)
}

// UpdateProfile edits the current user's profile. It authenticates with a
// bearer header rather than the cookie.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	return s.userRequest(ctx, http.MethodPatch, "/user", req, true)
}

func (s *Session) userRequest(ctx context.Context, method, path string, body any, bearer bool) (*UserResponse, error) {
	var (
		resp *http.Response
		err  error
	)
	if bearer {
		resp, err = s.doBearerRequest(ctx, method, path, body)
	} else {
		resp, err = s.doAuthRequest(ctx, method, path, body)
	}
	if err != nil {
		return nil, err
	}

	var u UserResponse
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword replaces the current user's password.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/change-password", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// RequestVerification asks the service to email a verification code.
func (s *Session) RequestVerification(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/verify-email", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// VerifyEmail redeems a verification code.
func (s *Session) VerifyEmail(ctx context.Context, code string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/verify-user", VerifyCodeRequest{Code: code})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
