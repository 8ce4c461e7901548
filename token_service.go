package yoga

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenExpiration is used when the configured TTL is not positive
const DefaultTokenExpiration = 24 * time.Hour

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration time.Duration
	issuer          string
	method          jwt.SigningMethod
	now             func() time.Time
	logger          Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

// TokenServiceOption customizes a TokenServiceImpl
type TokenServiceOption func(*TokenServiceImpl)

// WithClock replaces time.Now, used for issued at and expiry checks
func WithClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if now != nil {
			ts.now = now
		}
	}
}

// WithIssuer sets the iss claim and requires it on validation
func WithIssuer(issuer string) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		ts.issuer = issuer
	}
}

// WithTokenLogger sets the logger
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenService instance signing with HS512
func NewTokenService(signingKey []byte, tokenExpiration time.Duration, opts ...TokenServiceOption) *TokenServiceImpl {
	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}
	ts := &TokenServiceImpl{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		method:          jwt.SigningMethodHS512,
		now:             time.Now,
		logger:          defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}
	return ts
}

// NewTokenServiceFromConfig wires a token service from Config getters
func NewTokenServiceFromConfig(cfg Config, opts ...TokenServiceOption) *TokenServiceImpl {
	base := []TokenServiceOption{WithIssuer(cfg.GetIssuer())}
	return NewTokenService([]byte(cfg.GetSigningKey()), cfg.GetTokenExpiration(), append(base, opts...)...)
}

// Issue creates a signed token for subject
func (ts *TokenServiceImpl) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := ts.now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiration)),
		},
	}

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs claims using the configured signing key
func (ts *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(ts.method, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Parse verifies the signature, algorithm and expiry of tokenString
func (ts *TokenServiceImpl) Parse(tokenString string) (*JWTClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(err, ErrTokenExpired.Category, ErrTokenExpired.Message).
				WithTextCode(ErrTokenExpired.TextCode).
				WithCode(errors.CodeUnauthorized)
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Validate reports whether tokenString is signed by us and not expired.
// It never panics on garbage input.
func (ts *TokenServiceImpl) Validate(tokenString string) (valid bool) {
	defer func() {
		if r := recover(); r != nil {
			ts.logger.Error("TokenService validate recovered from panic", "panic", r)
			valid = false
		}
	}()

	if _, err := ts.Parse(tokenString); err != nil {
		ts.logger.Debug("TokenService validate rejected token", "error", err)
		return false
	}
	return true
}

// SubjectOf returns the subject of a validated token, or an empty string
// when the token cannot be parsed
func (ts *TokenServiceImpl) SubjectOf(tokenString string) string {
	claims, err := ts.Parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.Subject()
}

// TTL returns the configured token lifetime
func (ts *TokenServiceImpl) TTL() time.Duration {
	return ts.tokenExpiration
}
