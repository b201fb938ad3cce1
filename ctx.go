package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the IdentityClaims in the given context
func WithClaimsContext(ctx context.Context, claims *IdentityClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// GetClaims extracts the IdentityClaims from the standard context
func GetClaims(ctx context.Context) (*IdentityClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*IdentityClaims)
	return raw, ok
}

// GetLocalClaims extracts the IdentityClaims the gate stored in fiber locals
func GetLocalClaims(c *fiber.Ctx, key string) (*IdentityClaims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(*IdentityClaims)
	return claims, ok
}

// GetSession returns the client visible session for the current request.
// Raw claims never leave this boundary.
func GetSession(c *fiber.Ctx, key string) (Session, error) {
	claims, ok := GetLocalClaims(c, key)
	if !ok {
		return nil, ErrUnableToFindSession
	}
	return NewSessionView(claims)
}
