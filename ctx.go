package yoga

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is the fiber locals key used for the principal
const DefaultContextKey = "user"

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// Principal is the authenticated user attached to a request
type Principal struct {
	ID        int64  `json:"id"`
	Email     string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// PrincipalFromUser builds a principal from a stored user
func PrincipalFromUser(u *User) *Principal {
	if u == nil {
		return nil
	}
	return &Principal{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	}
}

// WithPrincipal sets the Principal in the given context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromContext finds the principal in the context
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	return p, ok && p != nil
}

// PrincipalFromFiber reads the principal stored by the auth middleware,
// looking at fiber locals first and the user context second
func PrincipalFromFiber(c *fiber.Ctx, key string) (*Principal, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	if p, ok := c.Locals(key).(*Principal); ok && p != nil {
		return p, true
	}
	return PrincipalFromContext(c.UserContext())
}
