package yoga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()

	hash, err := yoga.HashPassword("password123")
	require.NoError(t, err)

	user := &yoga.User{
		ID:           3,
		Email:        "yoga@studio.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: hash,
	}

	t.Run("valid credentials", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "yoga@studio.com").Return(user, nil).Once()

		provider := yoga.NewUserProvider(store).WithLogger(yoga.NopLogger())
		principal, err := provider.VerifyIdentity(ctx, "yoga@studio.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, &yoga.Principal{ID: 3, Email: "yoga@studio.com", FirstName: "Jane", LastName: "Doe"}, principal)
		store.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "yoga@studio.com").Return(user, nil).Once()

		provider := yoga.NewUserProvider(store).WithLogger(yoga.NopLogger())
		principal, err := provider.VerifyIdentity(ctx, "yoga@studio.com", "nope")
		assert.Nil(t, principal)
		assert.ErrorIs(t, err, yoga.ErrMismatchedHashAndPassword)
	})

	t.Run("unknown email looks like a wrong password", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ghost@studio.com").Return(nil, yoga.ErrUserNotFound).Once()

		provider := yoga.NewUserProvider(store).WithLogger(yoga.NopLogger())
		principal, err := provider.VerifyIdentity(ctx, "ghost@studio.com", "password123")
		assert.Nil(t, principal)
		assert.ErrorIs(t, err, yoga.ErrMismatchedHashAndPassword)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		store := new(MockUserStore)
		boom := errors.New("connection reset")
		store.On("GetByEmail", ctx, "yoga@studio.com").Return(nil, boom).Once()

		provider := yoga.NewUserProvider(store).WithLogger(yoga.NopLogger())
		_, err := provider.VerifyIdentity(ctx, "yoga@studio.com", "password123")
		assert.ErrorIs(t, err, boom)
		assert.False(t, yoga.IsUnauthorized(err))
	})

	t.Run("custom hasher", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "yoga@studio.com").Return(user, nil).Once()

		hasher := new(MockPasswordAuthenticator)
		hasher.On("ComparePasswordAndHash", "anything", hash).Return(nil).Once()

		provider := yoga.NewUserProvider(store).WithLogger(yoga.NopLogger()).WithHasher(hasher)
		principal, err := provider.VerifyIdentity(ctx, "yoga@studio.com", "anything")
		require.NoError(t, err)
		assert.Equal(t, int64(3), principal.ID)
		hasher.AssertExpectations(t)
	})
}

func TestUserProviderFindIdentityByEmail(t *testing.T) {
	ctx := context.Background()
	store := new(MockUserStore)
	store.On("GetByEmail", ctx, "yoga@studio.com").
		Return(&yoga.User{ID: 9, Email: "yoga@studio.com", Admin: true}, nil).Once()
	store.On("GetByEmail", ctx, "ghost@studio.com").Return(nil, yoga.ErrUserNotFound).Once()

	provider := yoga.NewUserProvider(store)

	principal, err := provider.FindIdentityByEmail(ctx, "yoga@studio.com")
	require.NoError(t, err)
	assert.Equal(t, int64(9), principal.ID)
	assert.True(t, principal.Admin)

	_, err = provider.FindIdentityByEmail(ctx, "ghost@studio.com")
	assert.True(t, yoga.IsNotFound(err))
	store.AssertExpectations(t)
}
