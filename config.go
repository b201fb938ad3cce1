package auth

import "time"

// Defaults for the route protection surface. These mirror the portal's page
// layout and can all be overridden through SimpleConfig.
const (
	DefaultContextKey        = "session"
	DefaultTokenLookup       = "cookie:exam_session,header:Authorization"
	DefaultAuthScheme        = "Bearer"
	DefaultLoginRoute        = "/login"
	DefaultUnauthorizedRoute = "/unauthorized"
	DefaultDashboardPrefix   = "/dashboard"
	DefaultDataTableSegment  = "/dbdata"
	DefaultRejectedRouteKey  = "rejected_route"
)

// DefaultProtectedPrefixes returns the path prefixes that require a session.
// The root prefix means the whole portal is closed by default; anything that
// must stay open has to be on the gate's skip list.
func DefaultProtectedPrefixes() []string {
	return []string{"/", DefaultDashboardPrefix}
}

var _ Config = &SimpleConfig{}

// SimpleConfig is a plain struct implementation of Config with sane defaults
type SimpleConfig struct {
	SigningKey        string
	SigningMethod     string
	ContextKey        string
	TokenTTL          time.Duration
	TokenLookup       string
	AuthScheme        string
	Issuer            string
	Audience          []string
	LoginRoute        string
	UnauthorizedRoute string
	ProtectedPrefixes []string
	DashboardPrefix   string
	DataTableSegment  string
	RejectedRouteKey  string
}

func (c *SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c *SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c *SimpleConfig) GetTokenExpiration() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}

func (c *SimpleConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return DefaultTokenLookup
	}
	return c.TokenLookup
}

func (c *SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return DefaultAuthScheme
	}
	return c.AuthScheme
}

func (c *SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c *SimpleConfig) GetAudience() []string {
	return c.Audience
}

func (c *SimpleConfig) GetLoginRoute() string {
	if c.LoginRoute == "" {
		return DefaultLoginRoute
	}
	return c.LoginRoute
}

func (c *SimpleConfig) GetUnauthorizedRoute() string {
	if c.UnauthorizedRoute == "" {
		return DefaultUnauthorizedRoute
	}
	return c.UnauthorizedRoute
}

func (c *SimpleConfig) GetProtectedPrefixes() []string {
	if len(c.ProtectedPrefixes) == 0 {
		return DefaultProtectedPrefixes()
	}
	return c.ProtectedPrefixes
}

func (c *SimpleConfig) GetDashboardPrefix() string {
	if c.DashboardPrefix == "" {
		return DefaultDashboardPrefix
	}
	return c.DashboardPrefix
}

func (c *SimpleConfig) GetDataTableSegment() string {
	if c.DataTableSegment == "" {
		return DefaultDataTableSegment
	}
	return c.DataTableSegment
}

func (c *SimpleConfig) GetRejectedRouteKey() string {
	if c.RejectedRouteKey == "" {
		return DefaultRejectedRouteKey
	}
	return c.RejectedRouteKey
}
