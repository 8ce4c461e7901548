package yoga

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserLookup retrieves users by their login email
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, email, password string) (*Principal, error)
	FindIdentityByEmail(ctx context.Context, email string) (*Principal, error)
}

// UserProvider handles users
type UserProvider struct {
	store  UserLookup
	hasher PasswordAuthenticator
	logger Logger
}

var _ IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserLookup) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: Hasher{},
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

func (u *UserProvider) WithHasher(h PasswordAuthenticator) *UserProvider {
	if h != nil {
		u.hasher = h
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity.
// Unknown emails and wrong passwords produce the same error.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (*Principal, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		u.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrMismatchedHashAndPassword
	}

	return PrincipalFromUser(user), nil
}

// FindIdentityByEmail loads the principal for a token subject
func (u *UserProvider) FindIdentityByEmail(ctx context.Context, email string) (*Principal, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return PrincipalFromUser(user), nil
}
