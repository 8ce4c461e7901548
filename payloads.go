package yoga

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validate("invalid login request payload", func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	})
}

// SignupRequest is the body of POST /api/auth/register
type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validate("invalid signup request payload", func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, validation.RuneLength(1, 50), is.Email),
			validation.Field(&r.FirstName, validation.Required, validation.RuneLength(3, 20)),
			validation.Field(&r.LastName, validation.Required, validation.RuneLength(3, 20)),
			validation.Field(&r.Password, validation.Required, validation.RuneLength(6, 40)),
		)
	})
}

func (r SignupRequest) normalized() SignupRequest {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

// JwtResponse is returned on successful login
type JwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

const MessageUserRegistered = "User registered successfully!"
