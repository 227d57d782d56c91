package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
)

const taskColumns = `id, user_id, title, description, due_date, status, priority, completed, created_at, updated_at`

type tasksRepo struct {
	q querier
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t                    domain.Task
		due                  sql.NullInt64
		status, priority     string
		completed            int
		createdAt, updatedAt int64
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &due,
		&status, &priority, &completed, &createdAt, &updatedAt); err != nil {
		return domain.Task{}, err
	}

	st, err := domain.ParseTaskStatus(status)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
	}
	pr, err := domain.ParseTaskPriority(priority)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
	}

	t.Status = st
	t.Priority = pr
	t.DueDate = mapNullMillis(due)
	t.Completed = completed != 0
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, mapOptionalMillis(t.DueDate),
		string(t.Status), string(t.Priority), boolToInt(t.Completed),
		toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return expectOne(r.q.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?,
			description = ?,
			due_date = ?,
			status = ?,
			priority = ?,
			completed = ?,
			updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, mapOptionalMillis(t.DueDate),
		string(t.Status), string(t.Priority), boolToInt(t.Completed),
		toMillis(time.Now()), t.ID,
	))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return expectOne(r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id))
}
