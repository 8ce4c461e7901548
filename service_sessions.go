package yoga

import (
	"context"
)

// SessionStore is the persistence the session service needs
type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Create(ctx context.Context, record *Session) (*Session, error)
	Update(ctx context.Context, record *Session) (*Session, error)
	Delete(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}

// UserFinder resolves users by id
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

// SessionService handles session CRUD and participation
type SessionService struct {
	sessions SessionStore
	users    UserFinder
	logger   Logger
}

// NewSessionService creates a SessionService
func NewSessionService(sessions SessionStore, users UserFinder) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		logger:   defLogger{},
	}
}

func (s *SessionService) WithLogger(l Logger) *SessionService {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *SessionService) FindAll(ctx context.Context) ([]*Session, error) {
	return s.sessions.List(ctx)
}

func (s *SessionService) GetByID(ctx context.Context, id int64) (*Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *SessionService) Create(ctx context.Context, session *Session) (*Session, error) {
	return s.sessions.Create(ctx, session)
}

// Update overwrites the session stored under id
func (s *SessionService) Update(ctx context.Context, id int64, session *Session) (*Session, error) {
	session.ID = id
	return s.sessions.Update(ctx, session)
}

func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.sessions.GetByID(ctx, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

// Participate adds userID to the session. Joining twice is an error.
// Only the participation row for userID is written.
func (s *SessionService) Participate(ctx context.Context, id, userID int64) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if session.HasParticipant(userID) {
		s.logger.Debug("participate rejected", "session_id", id, "user_id", userID)
		return ErrAlreadyParticipating
	}

	if err := s.sessions.AddParticipant(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("user joined session", "session_id", id, "user_id", userID)
	return nil
}

// NoLongerParticipate removes userID from the session. Removing a user
// that is not a participant is an error.
func (s *SessionService) NoLongerParticipate(ctx context.Context, id, userID int64) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !session.HasParticipant(userID) {
		s.logger.Debug("leave rejected", "session_id", id, "user_id", userID)
		return ErrNotParticipating
	}

	if err := s.sessions.RemoveParticipant(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("user left session", "session_id", id, "user_id", userID)
	return nil
}
