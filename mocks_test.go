package yoga_test

import (
	"context"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore implements yoga.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) GetByID(ctx context.Context, id int64) (*yoga.Session, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*yoga.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) List(ctx context.Context) ([]*yoga.Session, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).([]*yoga.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) Create(ctx context.Context, record *yoga.Session) (*yoga.Session, error) {
	args := m.Called(ctx, record)
	if s, ok := args.Get(0).(*yoga.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) Update(ctx context.Context, record *yoga.Session) (*yoga.Session, error) {
	args := m.Called(ctx, record)
	if s, ok := args.Get(0).(*yoga.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *MockSessionStore) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

// MockUserStore implements yoga.UserStore, yoga.UserFinder and yoga.UserLookup
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*yoga.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*yoga.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*yoga.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*yoga.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeacherStore implements yoga.TeacherStore and yoga.TeacherFinder
type MockTeacherStore struct {
	mock.Mock
}

func (m *MockTeacherStore) GetByID(ctx context.Context, id int64) (*yoga.Teacher, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*yoga.Teacher); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherStore) List(ctx context.Context) ([]*yoga.Teacher, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]*yoga.Teacher); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLogger implements yoga.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// MockIdentityProvider implements yoga.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, email, password string) (*yoga.Principal, error) {
	args := m.Called(ctx, email, password)
	if p, ok := args.Get(0).(*yoga.Principal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByEmail(ctx context.Context, email string) (*yoga.Principal, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*yoga.Principal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPasswordAuthenticator implements yoga.PasswordAuthenticator
type MockPasswordAuthenticator struct {
	mock.Mock
}

func (m *MockPasswordAuthenticator) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordAuthenticator) ComparePasswordAndHash(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}
