package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
)

// TaskService manages tasks. Every operation is scoped to the owner; tasks
// of other users are reported as ErrNotTaskOwner.
type TaskService struct {
	Store store.Store
}

func (s *TaskService) Create(ctx context.Context, ownerID string, req CreateTaskRequest) (domain.Task, error) {
	if err := validate(req); err != nil {
		return domain.Task{}, err
	}

	now := time.Now().UTC()
	t := domain.Task{
		ID:          idx.New().String(),
		UserID:      ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.TaskActive,
		Priority:    domain.PriorityLow,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != "" {
		t.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		t.Priority = domain.TaskPriority(req.Priority)
	}

	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasksByUser(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	return owned(ctx, s.Store.Tasks(), ownerID, taskID)
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, req UpdateTaskRequest) (domain.Task, error) {
	if err := validate(req); err != nil {
		return domain.Task{}, err
	}

	var out domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := owned(ctx, tx.Tasks(), ownerID, taskID)
		if err != nil {
			return err
		}
		req.toDomain().Apply(&t)
		if err := tx.Tasks().UpdateTask(ctx, t); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		out, err = tx.Tasks().GetTaskByID(ctx, taskID)
		return err
	})
	return out, err
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := owned(ctx, tx.Tasks(), ownerID, taskID); err != nil {
			return err
		}
		return tx.Tasks().DeleteTask(ctx, taskID)
	})
}

func owned(ctx context.Context, tasks store.Tasks, ownerID, taskID string) (domain.Task, error) {
	t, err := tasks.GetTaskByID(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("load task: %w", err)
	}
	if t.UserID != ownerID {
		return domain.Task{}, ErrNotTaskOwner
	}
	return t, nil
}
