package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 100
)

// notBlank rejects a set but whitespace-only value. Nil pointers pass, so it
// suits partial updates.
func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func differsFrom(other string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == other {
			return errors.New("must differ from the current password")
		}
		return nil
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.By(notBlank), validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Photo *string `json:"photo,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(notBlank), validation.Length(1, 100)),
		validation.Field(&r.Photo, is.URL, validation.Length(0, 2048)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
	)
}

func (r UpdateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{Name: trimmed(r.Name), Photo: trimmed(r.Photo), Bio: r.Bio}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(minPasswordLength, maxPasswordLength),
			validation.By(differsFrom(r.CurrentPassword)),
		),
	)
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

func (r SetRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required,
			validation.In(string(domain.RoleUser), string(domain.RoleCreator), string(domain.RoleAdmin)),
		),
	)
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

func (r VerifyCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

var (
	taskStatuses   = []interface{}{string(domain.TaskActive), string(domain.TaskInactive)}
	taskPriorities = []interface{}{string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh)}
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
}

func (r CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank), validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Status, validation.In(taskStatuses...)),
		validation.Field(&r.Priority, validation.In(taskPriorities...)),
	)
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

func (r UpdateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.By(notBlank), validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Status, validation.By(notBlank), validation.In(taskStatuses...)),
		validation.Field(&r.Priority, validation.By(notBlank), validation.In(taskPriorities...)),
	)
}

// toDomain assumes Validate has passed.
func (r UpdateTaskRequest) toDomain() domain.TaskUpdate {
	u := domain.TaskUpdate{
		Title:       trimmed(r.Title),
		Description: r.Description,
		DueDate:     r.DueDate,
		Completed:   r.Completed,
	}
	if r.Status != nil {
		st := domain.TaskStatus(*r.Status)
		u.Status = &st
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		u.Priority = &p
	}
	return u
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
