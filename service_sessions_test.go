package yoga_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memSessionStore keeps sessions in a map and copies on read and write
type memSessionStore struct {
	sessions map[int64]*yoga.Session
	updates  int
	writes   int
}

func newMemSessionStore(sessions ...*yoga.Session) *memSessionStore {
	s := &memSessionStore{sessions: map[int64]*yoga.Session{}}
	for _, session := range sessions {
		s.sessions[session.ID] = cloneSession(session)
	}
	return s
}

func cloneSession(s *yoga.Session) *yoga.Session {
	out := *s
	out.Users = append([]*yoga.User(nil), s.Users...)
	return &out
}

func (m *memSessionStore) GetByID(_ context.Context, id int64) (*yoga.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, yoga.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *memSessionStore) List(_ context.Context) ([]*yoga.Session, error) {
	out := make([]*yoga.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, cloneSession(s))
	}
	return out, nil
}

func (m *memSessionStore) Create(_ context.Context, record *yoga.Session) (*yoga.Session, error) {
	record.ID = int64(len(m.sessions) + 1)
	m.sessions[record.ID] = cloneSession(record)
	return record, nil
}

func (m *memSessionStore) Update(_ context.Context, record *yoga.Session) (*yoga.Session, error) {
	if _, ok := m.sessions[record.ID]; !ok {
		return nil, yoga.ErrSessionNotFound
	}
	m.updates++
	m.sessions[record.ID] = cloneSession(record)
	return record, nil
}

func (m *memSessionStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.sessions[id]; !ok {
		return yoga.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memSessionStore) AddParticipant(_ context.Context, sessionID, userID int64) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return yoga.ErrSessionNotFound
	}
	if !s.AddParticipant(&yoga.User{ID: userID}) {
		return yoga.ErrAlreadyParticipating
	}
	m.writes++
	return nil
}

func (m *memSessionStore) RemoveParticipant(_ context.Context, sessionID, userID int64) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return yoga.ErrSessionNotFound
	}
	if !s.RemoveParticipant(userID) {
		return yoga.ErrNotParticipating
	}
	m.writes++
	return nil
}

func newTestSession(id int64) *yoga.Session {
	return &yoga.Session{
		ID:          id,
		Name:        "Morning flow",
		Description: "Gentle vinyasa",
		Date:        time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Users:       []*yoga.User{},
	}
}

func TestSessionServiceParticipationScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemSessionStore(newTestSession(1))

	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(7)).Return(&yoga.User{ID: 7, Email: "seven@example.com"}, nil)

	service := yoga.NewSessionService(store, users).WithLogger(yoga.NopLogger())

	require.NoError(t, service.Participate(ctx, 1, 7))
	assert.Equal(t, []int64{7}, store.sessions[1].ParticipantIDs())

	err := service.Participate(ctx, 1, 7)
	require.Error(t, err)
	assert.True(t, yoga.IsBadRequest(err))
	assert.True(t, yoga.HasTextCode(err, yoga.TextCodeAlreadyParticipating))
	assert.Equal(t, []int64{7}, store.sessions[1].ParticipantIDs())

	require.NoError(t, service.NoLongerParticipate(ctx, 1, 7))
	assert.Empty(t, store.sessions[1].ParticipantIDs())

	err = service.NoLongerParticipate(ctx, 1, 7)
	require.Error(t, err)
	assert.True(t, yoga.IsBadRequest(err))
	assert.True(t, yoga.HasTextCode(err, yoga.TextCodeNotParticipating))

	assert.Equal(t, 2, store.writes)
	assert.Zero(t, store.updates)
}

func TestSessionServiceParticipate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session is not found regardless of user", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserStore)
		sessions.On("GetByID", ctx, int64(99)).Return(nil, yoga.ErrSessionNotFound)

		service := yoga.NewSessionService(sessions, users).WithLogger(yoga.NopLogger())

		err := service.Participate(ctx, 99, 1)
		assert.True(t, yoga.IsNotFound(err))

		err = service.NoLongerParticipate(ctx, 99, 1)
		assert.True(t, yoga.IsNotFound(err))

		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		sessions.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
		sessions.AssertNotCalled(t, "RemoveParticipant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserStore)
		sessions.On("GetByID", ctx, int64(1)).Return(newTestSession(1), nil)
		users.On("GetByID", ctx, int64(5)).Return(nil, yoga.ErrUserNotFound)

		service := yoga.NewSessionService(sessions, users).WithLogger(yoga.NopLogger())

		err := service.Participate(ctx, 1, 5)
		assert.True(t, yoga.IsNotFound(err))
		assert.True(t, yoga.HasTextCode(err, yoga.TextCodeUserNotFound))
		sessions.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("writes only the new participant", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserStore)
		session := newTestSession(1)
		session.Users = []*yoga.User{{ID: 2}}

		sessions.On("GetByID", ctx, int64(1)).Return(session, nil)
		users.On("GetByID", ctx, int64(3)).Return(&yoga.User{ID: 3}, nil)
		sessions.On("AddParticipant", ctx, int64(1), int64(3)).Return(nil).Once()

		service := yoga.NewSessionService(sessions, users).WithLogger(yoga.NopLogger())

		require.NoError(t, service.Participate(ctx, 1, 3))
		sessions.AssertExpectations(t)
		sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("concurrent join reported by the store", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserStore)

		sessions.On("GetByID", ctx, int64(1)).Return(newTestSession(1), nil)
		users.On("GetByID", ctx, int64(3)).Return(&yoga.User{ID: 3}, nil)
		sessions.On("AddParticipant", ctx, int64(1), int64(3)).Return(yoga.ErrAlreadyParticipating)

		service := yoga.NewSessionService(sessions, users).WithLogger(yoga.NopLogger())

		err := service.Participate(ctx, 1, 3)
		assert.True(t, yoga.HasTextCode(err, yoga.TextCodeAlreadyParticipating))
	})

	t.Run("removes only the leaving participant", func(t *testing.T) {
		sessions := new(MockSessionStore)
		session := newTestSession(1)
		session.Users = []*yoga.User{{ID: 2}, {ID: 3}}

		sessions.On("GetByID", ctx, int64(1)).Return(session, nil)
		sessions.On("RemoveParticipant", ctx, int64(1), int64(3)).Return(nil).Once()

		service := yoga.NewSessionService(sessions, new(MockUserStore)).WithLogger(yoga.NopLogger())

		require.NoError(t, service.NoLongerParticipate(ctx, 1, 3))
		sessions.AssertExpectations(t)
		sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		sessions := new(MockSessionStore)
		users := new(MockUserStore)
		boom := errors.New("disk full")

		sessions.On("GetByID", ctx, int64(1)).Return(newTestSession(1), nil)
		users.On("GetByID", ctx, int64(3)).Return(&yoga.User{ID: 3}, nil)
		sessions.On("AddParticipant", ctx, int64(1), int64(3)).Return(boom)

		service := yoga.NewSessionService(sessions, users).WithLogger(yoga.NopLogger())

		assert.ErrorIs(t, service.Participate(ctx, 1, 3), boom)
	})
}

func TestSessionServiceCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("update forces the path id", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("Update", ctx, mock.MatchedBy(func(s *yoga.Session) bool {
			return s.ID == 4
		})).Return(newTestSession(4), nil)

		service := yoga.NewSessionService(sessions, new(MockUserStore))

		updated, err := service.Update(ctx, 4, newTestSession(0))
		require.NoError(t, err)
		assert.Equal(t, int64(4), updated.ID)
	})

	t.Run("delete missing session", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("GetByID", ctx, int64(8)).Return(nil, yoga.ErrSessionNotFound)

		service := yoga.NewSessionService(sessions, new(MockUserStore))

		err := service.Delete(ctx, 8)
		assert.True(t, yoga.IsNotFound(err))
		sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete existing session", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("GetByID", ctx, int64(2)).Return(newTestSession(2), nil)
		sessions.On("Delete", ctx, int64(2)).Return(nil)

		service := yoga.NewSessionService(sessions, new(MockUserStore))

		require.NoError(t, service.Delete(ctx, 2))
		sessions.AssertExpectations(t)
	})

	t.Run("find all", func(t *testing.T) {
		sessions := new(MockSessionStore)
		sessions.On("List", ctx).Return([]*yoga.Session{newTestSession(1), newTestSession(2)}, nil)

		service := yoga.NewSessionService(sessions, new(MockUserStore))

		all, err := service.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
