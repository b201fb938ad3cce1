package auth_test

import (
	"testing"
	"time"

	"github.com/examsecure/go-exam-auth"
	"github.com/stretchr/testify/assert"
)

func TestSimpleConfigDefaults(t *testing.T) {
	cfg := &auth.SimpleConfig{SigningKey: "k"}

	assert.Equal(t, "k", cfg.GetSigningKey())
	assert.Equal(t, "HS256", cfg.GetSigningMethod())
	assert.Equal(t, auth.DefaultContextKey, cfg.GetContextKey())
	assert.Equal(t, 45*time.Minute, cfg.GetTokenExpiration())
	assert.Equal(t, auth.DefaultTokenLookup, cfg.GetTokenLookup())
	assert.Equal(t, auth.DefaultAuthScheme, cfg.GetAuthScheme())
	assert.Equal(t, auth.DefaultLoginRoute, cfg.GetLoginRoute())
	assert.Equal(t, auth.DefaultUnauthorizedRoute, cfg.GetUnauthorizedRoute())
	assert.Equal(t, auth.DefaultDashboardPrefix, cfg.GetDashboardPrefix())
	assert.Equal(t, auth.DefaultDataTableSegment, cfg.GetDataTableSegment())
	assert.Equal(t, auth.DefaultRejectedRouteKey, cfg.GetRejectedRouteKey())
	assert.Equal(t, []string{"/", "/dashboard"}, cfg.GetProtectedPrefixes())
}

func TestSimpleConfigOverrides(t *testing.T) {
	cfg := &auth.SimpleConfig{
		SigningKey:        "k",
		ContextKey:        "identity",
		TokenTTL:          10 * time.Minute,
		TokenLookup:       "header:Authorization",
		LoginRoute:        "/signin",
		UnauthorizedRoute: "/denied",
		ProtectedPrefixes: []string{"/portal"},
		DashboardPrefix:   "/portal",
		DataTableSegment:  "/records",
	}

	assert.Equal(t, "identity", cfg.GetContextKey())
	assert.Equal(t, 10*time.Minute, cfg.GetTokenExpiration())
	assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	assert.Equal(t, "/signin", cfg.GetLoginRoute())
	assert.Equal(t, "/denied", cfg.GetUnauthorizedRoute())
	assert.Equal(t, []string{"/portal"}, cfg.GetProtectedPrefixes())
	assert.Equal(t, "/portal", cfg.GetDashboardPrefix())
	assert.Equal(t, "/records", cfg.GetDataTableSegment())
}
