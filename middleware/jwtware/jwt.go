package jwtware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	defaultTokenLookup       = "header:" + fiber.HeaderAuthorization
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")
)

// TokenValidator interface for validating tokens without import cycles.
// Validate must never panic on malformed input.
type TokenValidator interface {
	Validate(tokenString string) bool
	SubjectOf(tokenString string) string
}

// IdentityLoader resolves the token subject to the identity stored in locals
type IdentityLoader func(ctx context.Context, subject string) (any, error)

// Logger is the subset of the application logger the middleware uses
type Logger interface {
	Debug(format string, args ...any)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
	// IdentityLoader is required to turn a subject into an identity
	IdentityLoader IdentityLoader
	ContextKey     string
	// TokenLookup lists sources as "header:<name>,query:<name>,cookie:<name>,param:<name>".
	// param sources need a route level mount.
	TokenLookup string
	AuthScheme  string

	// ContextEnricher is an optional function to propagate the identity to the
	// standard Go context. It is called after the identity is loaded.
	ContextEnricher func(c context.Context, identity any) context.Context

	Logger Logger
}

// New authenticates requests carrying a valid bearer token. Requests with
// a missing or invalid token, or whose subject cannot be loaded, continue
// without an identity. Use RequireAuth to reject them.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)
	extractors := cfg.getExtractors()

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawTokenFromContext(c, extractors)
		if err != nil || raw == "" {
			return c.Next()
		}

		if !cfg.TokenValidator.Validate(raw) {
			cfg.Logger.Debug("jwtware rejected token", "path", c.Path())
			return c.Next()
		}

		subject := cfg.TokenValidator.SubjectOf(raw)
		if subject == "" {
			return c.Next()
		}

		identity, err := cfg.IdentityLoader(c.UserContext(), subject)
		if err != nil || identity == nil {
			cfg.Logger.Debug("jwtware could not load identity", "subject", subject, "error", err)
			return c.Next()
		}

		c.Locals(cfg.ContextKey, identity)

		// if a context enricher we use it to propagate the identity to the standard context
		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), identity))
		}

		return c.Next()
	}
}

// RequireAuth rejects requests that reached it without an identity
func RequireAuth(contextKey string, errorHandler ...fiber.ErrorHandler) fiber.Handler {
	if contextKey == "" {
		contextKey = "user"
	}

	handler := func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  fiber.StatusUnauthorized,
			"error":   "Unauthorized",
			"message": "Full authentication is required to access this resource",
			"path":    c.Path(),
		})
	}
	if len(errorHandler) > 0 && errorHandler[0] != nil {
		handler = errorHandler[0]
	}

	return func(c *fiber.Ctx) error {
		if c.Locals(contextKey) == nil {
			return handler(c, fiber.ErrUnauthorized)
		}
		return c.Next()
	}
}

func ExtractRawTokenFromContext(c *fiber.Ctx, extractors []JWTExtractor) (string, error) {
	raw := ""
	err := ErrJWTMissingOrMalformed

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("YOGA: JWT middleware configuration: TokenValidator is required.")
	}

	if cfg.IdentityLoader == nil {
		panic("YOGA: JWT middleware configuration: IdentityLoader is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return cfg
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

func (cfg *Config) getExtractors() []JWTExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}

func GetExtractors(tokenLookup string, authSchemes ...string) []JWTExtractor {
	extractors := make([]JWTExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 && authSchemes[0] != "" {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:jwt,query:auth_token,param:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) < 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, jwtFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, jwtFromQuery(parts[1]))
		case "param":
			extractors = append(extractors, jwtFromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, jwtFromCookie(parts[1]))
		}
	}

	return extractors
}

type JWTExtractor func(c *fiber.Ctx) (string, error)

// jwtFromHeader returns a function that extracts token from the request header.
func jwtFromHeader(header string, authScheme string) JWTExtractor {
	authScheme = strings.TrimSpace(authScheme)
	l := len(authScheme)
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) && a[l] == ' ' {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrJWTMissingOrMalformed
	}
}

// jwtFromQuery returns a function that extracts token from the query string.
func jwtFromQuery(param string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromParam returns a function that extracts token from the url param string.
// Route params are only filled after routing, so this lookup works when the
// middleware is mounted on a route, not with app.Use.
func jwtFromParam(param string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Params(param)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}

// jwtFromCookie returns a function that extracts token from the named cookie.
func jwtFromCookie(name string) JWTExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrJWTMissingOrMalformed
		}
		return token, nil
	}
}
