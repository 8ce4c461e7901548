package yoga

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/uptrace/bun"
)

const (
	// MaxSessionNameLength is the longest accepted session name
	MaxSessionNameLength = 50
	// MaxSessionDescriptionLength is the longest accepted session description
	MaxSessionDescriptionLength = 2500
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string    `bun:"email,notnull,unique" json:"email,omitempty"`
	FirstName     string    `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string    `bun:"last_name,notnull" json:"last_name,omitempty"`
	PasswordHash  string    `bun:"password,notnull" json:"-"`
	Admin         bool      `bun:"admin,notnull,default:false" json:"admin"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// NewUser builds a user making sure the required fields are present.
// passwordHash must already be hashed.
func NewUser(email, firstName, lastName, passwordHash string, admin bool) (*User, error) {
	u := &User{
		Email:        strings.TrimSpace(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Admin:        admin,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the non null columns
func (u *User) Validate() error {
	return validate("invalid user", func() error {
		return validation.ValidateStruct(u,
			validation.Field(&u.Email, validation.Required, is.Email),
			validation.Field(&u.FirstName, validation.Required),
			validation.Field(&u.LastName, validation.Required),
			validation.Field(&u.PasswordHash, validation.Required),
		)
	})
}

// Equal compares users by id
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID
}

var _ bun.BeforeAppendModelHook = (*User)(nil)

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if u == nil {
		return nil
	}
	touch(query, &u.CreatedAt, &u.UpdatedAt)
	return nil
}

// Teacher is the teacher model
type Teacher struct {
	bun.BaseModel `bun:"table:teachers,alias:tch"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	FirstName     string    `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string    `bun:"last_name,notnull" json:"last_name,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// NewTeacher builds a teacher making sure both names are present
func NewTeacher(firstName, lastName string) (*Teacher, error) {
	t := &Teacher{FirstName: firstName, LastName: lastName}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the non null columns
func (t *Teacher) Validate() error {
	return validate("invalid teacher", func() error {
		return validation.ValidateStruct(t,
			validation.Field(&t.FirstName, validation.Required),
			validation.Field(&t.LastName, validation.Required),
		)
	})
}

// Equal compares teachers by id
func (t *Teacher) Equal(other *Teacher) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

var _ bun.BeforeAppendModelHook = (*Teacher)(nil)

func (t *Teacher) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if t == nil {
		return nil
	}
	touch(query, &t.CreatedAt, &t.UpdatedAt)
	return nil
}

// Session is a scheduled class. Users holds the participants in the
// order they joined and is persisted through the participate table.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string    `bun:"name,notnull" json:"name"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	Description   string    `bun:"description,notnull" json:"description"`
	TeacherID     *int64    `bun:"teacher_id" json:"teacher_id,omitempty"`
	Teacher       *Teacher  `bun:"rel:belongs-to,join:teacher_id=id" json:"teacher,omitempty"`
	Users         []*User   `bun:"-" json:"users,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at,omitempty"`
}

// NewSession builds a session making sure the required fields are present
// and within bounds. teacher may be nil.
func NewSession(name, description string, date time.Time, teacher *Teacher, users ...*User) (*Session, error) {
	s := &Session{
		Name:        name,
		Description: description,
		Date:        date,
		Users:       users,
	}
	s.SetTeacher(teacher)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks required fields and lengths
func (s *Session) Validate() error {
	return validate("invalid session", func() error {
		return validation.ValidateStruct(s,
			validation.Field(&s.Name, validation.Required, validation.RuneLength(1, MaxSessionNameLength)),
			validation.Field(&s.Description, validation.Required, validation.RuneLength(1, MaxSessionDescriptionLength)),
			validation.Field(&s.Date, validation.Required),
		)
	})
}

// SetTeacher keeps Teacher and TeacherID in sync
func (s *Session) SetTeacher(t *Teacher) {
	s.Teacher = t
	if t == nil {
		s.TeacherID = nil
		return
	}
	id := t.ID
	s.TeacherID = &id
}

// Equal compares sessions by id
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

// HasParticipant reports whether a user with userID is in the session
func (s *Session) HasParticipant(userID int64) bool {
	return s.participantIndex(userID) >= 0
}

// AddParticipant appends u, returning false when already present
func (s *Session) AddParticipant(u *User) bool {
	if u == nil || s.HasParticipant(u.ID) {
		return false
	}
	s.Users = append(s.Users, u)
	return true
}

// RemoveParticipant drops userID, returning false when absent
func (s *Session) RemoveParticipant(userID int64) bool {
	idx := s.participantIndex(userID)
	if idx < 0 {
		return false
	}
	s.Users = append(s.Users[:idx], s.Users[idx+1:]...)
	return true
}

// ParticipantIDs returns the participant ids in join order
func (s *Session) ParticipantIDs() []int64 {
	ids := make([]int64, 0, len(s.Users))
	for _, u := range s.Users {
		if u != nil {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func (s *Session) participantIndex(userID int64) int {
	for i, u := range s.Users {
		if u != nil && u.ID == userID {
			return i
		}
	}
	return -1
}

func (s *Session) String() string {
	if s == nil {
		return "Session(nil)"
	}
	return fmt.Sprintf("Session(id=%d, name=%s, date=%s, description=%s, teacher_id=%s, users=%v)",
		s.ID, s.Name, s.Date.Format(time.RFC3339), s.Description, formatTeacherID(s.TeacherID), s.ParticipantIDs())
}

func formatTeacherID(id *int64) string {
	if id == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *id)
}

var _ bun.BeforeAppendModelHook = (*Session)(nil)

func (s *Session) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if s == nil {
		return nil
	}
	touch(query, &s.CreatedAt, &s.UpdatedAt)
	return nil
}

// Participation links a user to a session. Position keeps join order.
type Participation struct {
	bun.BaseModel `bun:"table:participate,alias:prt"`
	SessionID     int64 `bun:"session_id,pk" json:"session_id"`
	UserID        int64 `bun:"user_id,pk" json:"user_id"`
	Position      int   `bun:"position,notnull" json:"position"`
}

// touch stamps timestamps so updated_at never precedes created_at
func touch(query bun.Query, createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if createdAt.IsZero() {
			*createdAt = now
		}
		*updatedAt = *createdAt
		if now.After(*updatedAt) {
			*updatedAt = now
		}
	case *bun.UpdateQuery:
		if !createdAt.IsZero() && now.Before(*createdAt) {
			now = *createdAt
		}
		*updatedAt = now
	}
}
