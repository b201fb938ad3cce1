package auth

import (
	"context"
	"strings"
	"time"

	"github.com/examsecure/go-exam-auth/middleware/gateware"
	"github.com/gofiber/fiber/v2"
)

// RouteAuthenticator ties the authenticator to the HTTP surface: it issues
// the session cookie on login, clears it on logout, and builds the access
// gate middleware from the shared Config.
type RouteAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

// NewHTTPAuthenticator returns a new RouteAuthenticator
func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := DefaultTokenTTL
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = cfg.GetTokenExpiration()
	}

	return &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// ProtectedRoute builds the access gate from the shared configuration. The
// role check on the data-table area goes through the typed Role so the
// comparison stays exhaustive.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config) fiber.Handler {
	return gateware.New(gateware.Config{
		Validator:         gateValidator{ts: a.tokenService()},
		ContextKey:        cfg.GetContextKey(),
		TokenLookup:       cfg.GetTokenLookup(),
		AuthScheme:        cfg.GetAuthScheme(),
		ProtectedPrefixes: cfg.GetProtectedPrefixes(),
		DashboardPrefix:   cfg.GetDashboardPrefix(),
		DataTableSegment:  cfg.GetDataTableSegment(),
		LoginRoute:        cfg.GetLoginRoute(),
		UnauthorizedRoute: cfg.GetUnauthorizedRoute(),
		DataTableAccess: func(claims gateware.AuthClaims) bool {
			role, ok := ParseRole(claims.Role())
			if !ok {
				return false
			}
			return role.CanViewDataTables()
		},
		ContextEnricher: func(ctx context.Context, claims gateware.AuthClaims) context.Context {
			if c, ok := claims.(*IdentityClaims); ok {
				return WithClaimsContext(ctx, c)
			}
			return ctx
		},
	})
}

// Login verifies the payload and sets the session cookie
func (a *RouteAuthenticator) Login(c *fiber.Ctx, payload LoginPayload) error {
	token, err := a.auth.Login(c.UserContext(), payload.GetHallticket(), payload.GetDOB(), c.IP())
	if err != nil {
		a.Logger.Error("Login error: %v", err)
		return err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return nil
}

// Logout clears the cookie and releases the single-session flag. The cookie
// goes away no matter what the store says.
func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	if claims, ok := GetLocalClaims(c, a.cfg.GetContextKey()); ok {
		a.auth.Logout(c.UserContext(), claims.UserID())
	} else if raw := c.Cookies(a.cookieName()); raw != "" {
		if session, err := a.auth.SessionFromToken(raw); err == nil {
			a.auth.Logout(c.UserContext(), session.GetUserID())
		}
	}

	a.cookieDel(c, a.cookieName())
}

// SetRedirect remembers the rejected route so a successful login can land
// the candidate back where they were headed
func (a *RouteAuthenticator) SetRedirect(c *fiber.Ctx) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	c.Cookie(&fiber.Cookie{
		Name:     rejectedRoute,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect pops the remembered route, falling back to def
func (a *RouteAuthenticator) GetRedirect(c *fiber.Ctx, def string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := c.Cookies(rejectedRoute)
	if r == "" {
		return def
	}
	a.cookieDel(c, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) tokenService() TokenService {
	if auther, ok := a.auth.(*Auther); ok {
		return auther.TokenService()
	}

	return NewTokenService(
		[]byte(a.cfg.GetSigningKey()),
		a.cfg.GetTokenExpiration(),
		a.cfg.GetIssuer(),
		a.cfg.GetAudience(),
		a.Logger,
	)
}

func (a *RouteAuthenticator) cookieName() string {
	lookup := GetCookieName(a.cfg.GetTokenLookup())
	if lookup == "" {
		return a.cfg.GetContextKey()
	}
	return lookup
}

func (a *RouteAuthenticator) setCookieToken(c *fiber.Ctx, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetCookieName extracts the first cookie source from a token lookup string
func GetCookieName(tokenLookup string) string {
	for _, rootPart := range strings.Split(tokenLookup, ",") {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "cookie" {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

// gateValidator adapts the TokenService to the gate's mirrored interface
type gateValidator struct {
	ts TokenService
}

func (g gateValidator) Validate(tokenString string) (gateware.AuthClaims, error) {
	claims, err := g.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
