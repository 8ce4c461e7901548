package yoga

import "context"

// UserStore is the persistence the user service needs
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	users  UserStore
	logger Logger
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, logger: defLogger{}}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// Delete removes the user with id. Only the user itself may do it.
func (s *UserService) Delete(ctx context.Context, principal *Principal, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if principal == nil || principal.Email != user.Email {
		s.logger.Warn("user delete denied", "user_id", id)
		return ErrUnauthorized
	}

	return s.users.Delete(ctx, id)
}
