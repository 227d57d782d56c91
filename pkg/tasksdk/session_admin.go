package tasksdk

import (
	"context"
	"net/http"
	"net/url"
)

// Admin operations. Listing requires the creator or admin role; changes
// require admin.

func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var users []UserResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Session) SetRole(ctx context.Context, userID, role string) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch,
		"/admin/users/"+url.PathEscape(userID)+"/role", SetRoleRequest{Role: role})
	if err != nil {
		return nil, err
	}

	var u UserResponse
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Session) DeleteUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
