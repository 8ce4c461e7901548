package yoga

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SessionDTO is the wire shape of a session
type SessionDTO struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name"`
	Date        *time.Time `json:"date"`
	TeacherID   *int64     `json:"teacher_id"`
	Users       []int64    `json:"users"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (d SessionDTO) Validate() error {
	return validate("invalid session payload", func() error {
		return validation.ValidateStruct(&d,
			validation.Field(&d.Name, validation.Required, validation.RuneLength(1, MaxSessionNameLength)),
			validation.Field(&d.Description, validation.Required, validation.RuneLength(1, MaxSessionDescriptionLength)),
			validation.Field(&d.Date, validation.Required),
		)
	})
}

// TeacherDTO is the wire shape of a teacher
type TeacherDTO struct {
	ID        int64      `json:"id,omitempty"`
	LastName  string     `json:"lastName"`
	FirstName string     `json:"firstName"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserDTO is the wire shape of a user. Password is only read from
// requests, it is never filled from an entity.
type UserDTO struct {
	ID        int64      `json:"id,omitempty"`
	Email     string     `json:"email"`
	LastName  string     `json:"lastName"`
	FirstName string     `json:"firstName"`
	Admin     bool       `json:"admin"`
	Password  string     `json:"password,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate will run validation rules
func (d UserDTO) Validate() error {
	return validate("invalid user payload", func() error {
		return validation.ValidateStruct(&d,
			validation.Field(&d.Email, validation.Required, validation.RuneLength(1, 50), is.Email),
			validation.Field(&d.LastName, validation.Required, validation.RuneLength(1, 20)),
			validation.Field(&d.FirstName, validation.Required, validation.RuneLength(1, 20)),
		)
	})
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
