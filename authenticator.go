package yoga

import (
	"context"
)

// TokenType is the scheme reported to clients on login
const TokenType = "Bearer"

// Auther logs users in and hands out tokens
type Auther struct {
	provider IdentityProvider
	tokens   TokenService
	logger   Logger
}

func NewAuthenticator(provider IdentityProvider, tokens TokenService) *Auther {
	return &Auther{
		provider: provider,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Login verifies the credentials and issues a token for the user email
func (s *Auther) Login(ctx context.Context, email, password string) (*JwtResponse, error) {
	principal, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return nil, err
	}

	if principal == nil {
		s.logger.Error("Login identity is nil")
		return nil, ErrMismatchedHashAndPassword
	}

	token, err := s.tokens.Issue(principal.Email)
	if err != nil {
		s.logger.Error("Login failed to issue token", "error", err)
		return nil, err
	}

	return &JwtResponse{
		Token:     token,
		Type:      TokenType,
		ID:        principal.ID,
		Username:  principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Admin:     principal.Admin,
	}, nil
}

// IdentityFromToken resolves the principal behind a raw token
func (s *Auther) IdentityFromToken(ctx context.Context, token string) (*Principal, error) {
	if !s.tokens.Validate(token) {
		return nil, ErrUnauthorized
	}
	return s.provider.FindIdentityByEmail(ctx, s.tokens.SubjectOf(token))
}
