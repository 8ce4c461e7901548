package yoga

import (
	"context"
)

// TeacherFinder resolves teachers by id
type TeacherFinder interface {
	GetByID(ctx context.Context, id int64) (*Teacher, error)
}

// SessionToDTO flattens the teacher and participants to ids
func SessionToDTO(s *Session) *SessionDTO {
	if s == nil {
		return nil
	}

	dto := &SessionDTO{
		ID:          s.ID,
		Name:        s.Name,
		Date:        timePtr(s.Date),
		Description: s.Description,
		Users:       s.ParticipantIDs(),
		CreatedAt:   timePtr(s.CreatedAt),
		UpdatedAt:   timePtr(s.UpdatedAt),
	}

	switch {
	case s.Teacher != nil:
		id := s.Teacher.ID
		dto.TeacherID = &id
	case s.TeacherID != nil:
		id := *s.TeacherID
		dto.TeacherID = &id
	}

	return dto
}

func SessionsToDTO(list []*Session) []*SessionDTO {
	if list == nil {
		return nil
	}
	out := make([]*SessionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, SessionToDTO(s))
	}
	return out
}

// SessionMapper resolves DTO ids back into entities
type SessionMapper struct {
	teachers TeacherFinder
	users    UserFinder
}

func NewSessionMapper(teachers TeacherFinder, users UserFinder) SessionMapper {
	return SessionMapper{teachers: teachers, users: users}
}

// ToEntity builds a session from dto. A teacher id that does not resolve
// leaves the teacher empty and user ids that do not resolve are dropped.
// Lookup failures other than not found are returned.
func (m SessionMapper) ToEntity(ctx context.Context, dto *SessionDTO) (*Session, error) {
	if dto == nil {
		return nil, nil
	}

	s := &Session{
		ID:          dto.ID,
		Name:        dto.Name,
		Date:        timeValue(dto.Date),
		Description: dto.Description,
		Users:       make([]*User, 0, len(dto.Users)),
		CreatedAt:   timeValue(dto.CreatedAt),
		UpdatedAt:   timeValue(dto.UpdatedAt),
	}

	if dto.TeacherID != nil {
		teacher, err := m.teachers.GetByID(ctx, *dto.TeacherID)
		switch {
		case err == nil:
			s.SetTeacher(teacher)
		case !IsNotFound(err):
			return nil, err
		}
	}

	for _, id := range dto.Users {
		user, err := m.users.GetByID(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if user != nil {
			s.AddParticipant(user)
		}
	}

	return s, nil
}

func (m SessionMapper) ToEntities(ctx context.Context, list []*SessionDTO) ([]*Session, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]*Session, 0, len(list))
	for _, dto := range list {
		s, err := m.ToEntity(ctx, dto)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
