package tasksdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsCookieOnLaterRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(AuthResponse{
			UserResponse: UserResponse{ID: "u1", Email: req.Email, Role: "user"},
			Token:        "tok",
		})
	})
	mux.HandleFunc("GET /api/v1/user", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("token")
		if err != nil || c.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "Not authorized, please login!"})
			return
		}
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "u1"})
	})
	mux.HandleFunc("PATCH /api/v1/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "u1", Name: "New"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := NewSDKClient(srv.URL + "/")

	session, err := client.Login(ctx, LoginRequest{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "tok", session.Token())
	require.Equal(t, "u1", session.User().ID)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", me.ID)

	name := "New"
	me, err = session.UpdateProfile(ctx, UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "New", me.Name)

	_, err = client.NewSession("other").Me(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Not authorized, please login!", apiErr.Message)
}

func TestParseErrorResponseFallback(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP 502: Bad Gateway", apiErr.Message)

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}
