package yoga

import "context"

// TeacherStore is the persistence the teacher service needs
type TeacherStore interface {
	GetByID(ctx context.Context, id int64) (*Teacher, error)
	List(ctx context.Context) ([]*Teacher, error)
}

type TeacherService struct {
	teachers TeacherStore
}

func NewTeacherService(teachers TeacherStore) *TeacherService {
	return &TeacherService{teachers: teachers}
}

func (s *TeacherService) FindAll(ctx context.Context) ([]*Teacher, error) {
	return s.teachers.List(ctx)
}

func (s *TeacherService) GetByID(ctx context.Context, id int64) (*Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}
