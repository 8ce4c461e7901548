package yoga

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// Hasher implements PasswordAuthenticator with bcrypt
type Hasher struct {
	cost int
}

var _ PasswordAuthenticator = Hasher{}

// NewHasher returns a bcrypt hasher. Costs outside the bcrypt range
// fall back to the build default.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = passwordHashCost()
	}
	return Hasher{cost: cost}
}

// HashPassword will generate a password hash
func (h Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	cost := h.cost
	if cost == 0 {
		cost = passwordHashCost()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	return string(hash), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func (h Hasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return goerrors.Wrap(err, goerrors.CategoryAuth, "failed to compare password").
			WithCode(goerrors.CodeUnauthorized)
	}
	return nil
}

// HashPassword hashes with the default cost
func HashPassword(password string) (string, error) {
	return Hasher{}.HashPassword(password)
}

// ComparePasswordAndHash compares with the default hasher
func ComparePasswordAndHash(password, hash string) error {
	return Hasher{}.ComparePasswordAndHash(password, hash)
}
