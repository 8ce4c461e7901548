package yoga

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeSessionNotFound      = "SESSION_NOT_FOUND"
	TextCodeUserNotFound         = "USER_NOT_FOUND"
	TextCodeTeacherNotFound      = "TEACHER_NOT_FOUND"
	TextCodeAlreadyParticipating = "ALREADY_PARTICIPATING"
	TextCodeNotParticipating     = "NOT_PARTICIPATING"
	TextCodeInvalidID            = "INVALID_ID"
	TextCodeEmailTaken           = "EMAIL_TAKEN"
	TextCodeInvalidCreds         = "INVALID_CREDENTIALS"
	TextCodeUnauthorized         = "UNAUTHORIZED"
	TextCodeTokenExpired         = "TOKEN_EXPIRED"
	TextCodeTokenMalformed       = "TOKEN_MALFORMED"
	TextCodeEmptyPassword        = "EMPTY_PASSWORD"
	TextCodeEmptySubject         = "EMPTY_SUBJECT"
)

// ErrSessionNotFound is returned when a session id does not resolve.
var ErrSessionNotFound = errors.New("session not found", errors.CategoryNotFound).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(errors.CodeNotFound)

// ErrUserNotFound is returned when a user id or email does not resolve.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrTeacherNotFound is returned when a teacher id does not resolve.
var ErrTeacherNotFound = errors.New("teacher not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTeacherNotFound).
	WithCode(errors.CodeNotFound)

// ErrAlreadyParticipating is returned when a user joins a session twice.
var ErrAlreadyParticipating = errors.New("user already participates in session", errors.CategoryBadInput).
	WithTextCode(TextCodeAlreadyParticipating).
	WithCode(errors.CodeBadRequest)

// ErrNotParticipating is returned when removing a user that is not in the session.
var ErrNotParticipating = errors.New("user does not participate in session", errors.CategoryBadInput).
	WithTextCode(TextCodeNotParticipating).
	WithCode(errors.CodeBadRequest)

// ErrInvalidID is returned for path ids that are not positive integers.
var ErrInvalidID = errors.New("invalid id", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidID).
	WithCode(errors.CodeBadRequest)

// ErrEmailTaken is returned by registration when the email already exists.
var ErrEmailTaken = errors.New("Error: Email is already taken!", errors.CategoryBadInput).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword hides whether the email or the password was wrong.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is returned when a protected operation has no matching principal.
var ErrUnauthorized = errors.New("unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned by TokenService.Parse for expired tokens.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned by TokenService.Parse for any other failure.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrEmptySubject is returned when issuing a token without a subject.
var ErrEmptySubject = errors.New("token subject must not be empty", errors.CategoryBadInput).
	WithTextCode(TextCodeEmptySubject).
	WithCode(errors.CodeBadRequest)

// IsNotFound reports whether err carries the not found category.
func IsNotFound(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryNotFound
}

// IsBadRequest reports whether err is a bad input or validation error.
func IsBadRequest(err error) bool {
	richErr, ok := asRichError(err)
	if !ok {
		return false
	}
	return richErr.Category == errors.CategoryBadInput || richErr.Category == errors.CategoryValidation
}

// IsUnauthorized reports whether err carries the auth category.
func IsUnauthorized(err error) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.Category == errors.CategoryAuth
}

// HasTextCode reports whether err is a rich error with the given text code.
func HasTextCode(err error, code string) bool {
	richErr, ok := asRichError(err)
	return ok && richErr.TextCode == code
}

func asRichError(err error) (*errors.Error, bool) {
	var richErr *errors.Error
	if err == nil || !errors.As(err, &richErr) {
		return nil, false
	}
	return richErr, true
}

// validate runs ozzo rules and reports failures as a validation error
func validate(msg string, fn func() error) error {
	if richErr := errors.ValidateWithOzzo(fn, msg); richErr != nil {
		return richErr.WithCode(errors.CodeBadRequest)
	}
	return nil
}
