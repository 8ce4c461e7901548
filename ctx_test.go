package yoga_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-yoga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalFromUser(t *testing.T) {
	assert.Nil(t, yoga.PrincipalFromUser(nil))

	p := yoga.PrincipalFromUser(&yoga.User{
		ID:           2,
		Email:        "yoga@studio.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: "secret",
		Admin:        true,
	})
	assert.Equal(t, &yoga.Principal{ID: 2, Email: "yoga@studio.com", FirstName: "Jane", LastName: "Doe", Admin: true}, p)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := yoga.PrincipalFromContext(context.Background())
	assert.False(t, ok)

	var nilCtx context.Context
	_, ok = yoga.PrincipalFromContext(nilCtx)
	assert.False(t, ok)

	p := &yoga.Principal{ID: 1, Email: "yoga@studio.com"}
	ctx := yoga.WithPrincipal(context.Background(), p)

	got, ok := yoga.PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, p, got)

	ctx = yoga.WithPrincipal(context.Background(), nil)
	_, ok = yoga.PrincipalFromContext(ctx)
	assert.False(t, ok)
}

func TestPrincipalFromFiber(t *testing.T) {
	p := &yoga.Principal{ID: 5, Email: "yoga@studio.com"}

	tests := []struct {
		name   string
		setup  func(c *fiber.Ctx)
		key    string
		wantOK bool
	}{
		{
			name:   "from locals",
			setup:  func(c *fiber.Ctx) { c.Locals("user", p) },
			wantOK: true,
		},
		{
			name:   "custom key",
			setup:  func(c *fiber.Ctx) { c.Locals("principal", p) },
			key:    "principal",
			wantOK: true,
		},
		{
			name:   "from user context",
			setup:  func(c *fiber.Ctx) { c.SetUserContext(yoga.WithPrincipal(c.UserContext(), p)) },
			wantOK: true,
		},
		{
			name:   "missing",
			setup:  func(c *fiber.Ctx) {},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				tt.setup(c)
				got, ok := yoga.PrincipalFromFiber(c, tt.key)
				if !ok {
					return c.SendString("none")
				}
				return c.SendString(got.Email)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			if tt.wantOK {
				assert.Equal(t, "yoga@studio.com", string(body))
			} else {
				assert.Equal(t, "none", string(body))
			}
		})
	}
}
