package gateware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator validates tokens without importing the root package.
// It mirrors TokenService.Validate.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims mirrors the decoded identity claims the gate needs
type AuthClaims interface {
	UserID() string
	Role() string
}

type Config struct {
	// Filter skips the gate entirely when it returns true
	Filter func(*fiber.Ctx) bool
	// Validator is required
	Validator TokenValidator

	ContextKey  string
	TokenLookup string
	AuthScheme  string

	// ProtectedPrefixes is the prefix list requiring a session. Paths outside
	// it proceed unconditionally, so the list must be exhaustive for anything
	// needing auth.
	ProtectedPrefixes []string
	// SkipRoutes are exact paths excluded from the gate even when a protected
	// prefix matches them. The login and unauthorized routes are always
	// skipped so redirects cannot loop.
	SkipRoutes []string

	// DashboardPrefix plus DataTableSegment describe the admin-only area:
	// a path is restricted when it lives under the prefix and contains the
	// segment.
	DashboardPrefix  string
	DataTableSegment string

	LoginRoute        string
	UnauthorizedRoute string

	// DataTableAccess decides whether the claims may enter the restricted
	// area. The default accepts the ADMIN role only.
	DataTableAccess func(AuthClaims) bool

	// ContextEnricher propagates claims to the standard Go context after a
	// successful validation.
	ContextEnricher func(context.Context, AuthClaims) context.Context
}

// New builds the gate handler
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)
	extractors := GetExtractors(cfg.TokenLookup, cfg.AuthScheme)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		path := c.Path()

		if cfg.isSkipped(path) || !cfg.isProtected(path) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, extractors)
		if err != nil {
			return redirect(c, cfg.LoginRoute)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			// Expired and malformed both resolve to the same redirect;
			// decode errors never escape the gate.
			return redirect(c, cfg.LoginRoute)
		}

		if cfg.isDataTablePath(path) && !cfg.DataTableAccess(claims) {
			return redirect(c, cfg.UnauthorizedRoute)
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), claims))
		}

		return c.Next()
	}
}

// GetDefaultConfig fills in the blanks of an optional Config
func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Validator == nil {
		panic("GATE: middleware configuration: Validator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "session"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "cookie:exam_session,header:" + fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if len(cfg.ProtectedPrefixes) == 0 {
		cfg.ProtectedPrefixes = []string{"/", "/dashboard"}
	}

	if cfg.DashboardPrefix == "" {
		cfg.DashboardPrefix = "/dashboard"
	}

	if cfg.DataTableSegment == "" {
		cfg.DataTableSegment = "/dbdata"
	}

	if cfg.LoginRoute == "" {
		cfg.LoginRoute = "/login"
	}

	if cfg.UnauthorizedRoute == "" {
		cfg.UnauthorizedRoute = "/unauthorized"
	}

	cfg.SkipRoutes = append(cfg.SkipRoutes, cfg.LoginRoute, cfg.UnauthorizedRoute)

	if cfg.DataTableAccess == nil {
		cfg.DataTableAccess = func(claims AuthClaims) bool {
			return claims.Role() == "ADMIN"
		}
	}

	return cfg
}

func (cfg *Config) isProtected(path string) bool {
	for _, prefix := range cfg.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (cfg *Config) isSkipped(path string) bool {
	for _, route := range cfg.SkipRoutes {
		if path == route {
			return true
		}
	}
	return false
}

func (cfg *Config) isDataTablePath(path string) bool {
	return strings.HasPrefix(path, cfg.DashboardPrefix) &&
		strings.Contains(path, cfg.DataTableSegment)
}

func redirect(c *fiber.Ctx, target string) error {
	statusCode := http.StatusSeeOther
	if c.Method() == fiber.MethodGet {
		statusCode = http.StatusFound
	}
	return c.Redirect(target, statusCode)
}
