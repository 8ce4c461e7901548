package yoga

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-yoga/middleware/jwtware"
)

// ContextEnricherAdapter stores a *Principal identity in the standard context
func ContextEnricherAdapter(c context.Context, identity any) context.Context {
	principal, ok := identity.(*Principal)
	if !ok || principal == nil {
		return c
	}
	return WithPrincipal(c, principal)
}

// IdentityLoaderAdapter exposes an IdentityProvider as a jwtware loader
func IdentityLoaderAdapter(provider IdentityProvider) jwtware.IdentityLoader {
	return func(ctx context.Context, subject string) (any, error) {
		principal, err := provider.FindIdentityByEmail(ctx, subject)
		if err != nil {
			return nil, err
		}
		if principal == nil {
			return nil, ErrUserNotFound
		}
		return principal, nil
	}
}

// AuthMiddleware attaches the request principal when a valid token is present
func AuthMiddleware(cfg Config, tokens TokenService, provider IdentityProvider, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}
	return jwtware.New(jwtware.Config{
		TokenValidator:  tokens,
		IdentityLoader:  IdentityLoaderAdapter(provider),
		ContextEnricher: ContextEnricherAdapter,
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		AuthScheme:      cfg.GetAuthScheme(),
		Logger:          logger,
	})
}

// RequireAuth rejects requests without a principal with 401
func RequireAuth(cfg Config) fiber.Handler {
	return jwtware.RequireAuth(cfg.GetContextKey())
}
