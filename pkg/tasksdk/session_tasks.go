package tasksdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateTask requires a verified account.
func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/task/create", req)
	if err != nil {
		return nil, err
	}

	var t TaskResponse
	if err := decodeJSON(resp, &t, http.StatusCreated); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns the current user's tasks, newest first.
func (s *Session) ListTasks(ctx context.Context) (*TaskListResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}

	var list TaskListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *Session) GetTask(ctx context.Context, id string) (*TaskResponse, error) {
	return s.task(ctx, http.MethodGet, id, nil)
}

func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*TaskResponse, error) {
	return s.task(ctx, http.MethodPatch, id, req)
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/task/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (s *Session) task(ctx context.Context, method, id string, body any) (*TaskResponse, error) {
	resp, err := s.doAuthRequest(ctx, method, "/task/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}

	var t TaskResponse
	if err := decodeJSON(resp, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}
