package gateware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/examsecure/go-exam-auth/middleware/gateware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	id   string
	role string
}

func (s stubClaims) UserID() string { return s.id }
func (s stubClaims) Role() string   { return s.role }

type stubValidator struct {
	claims gateware.AuthClaims
	err    error
}

func (s stubValidator) Validate(token string) (gateware.AuthClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newGateApp(validator gateware.TokenValidator, overrides ...gateware.Config) *fiber.App {
	cfg := gateware.Config{Validator: validator}
	if len(overrides) > 0 {
		cfg = overrides[0]
		cfg.Validator = validator
	}

	app := fiber.New()
	app.Use(gateware.New(cfg))

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", ok)
	app.Get("/login", ok)
	app.Get("/unauthorized", ok)
	app.Get("/dashboard", ok)
	app.Get("/dashboard/dbdata/candidates", ok)
	app.Get("/files/dbdata", ok)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "exam_session", Value: token})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGateRedirectsWithoutToken(t *testing.T) {
	app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "USER"}})

	t.Run("GET without a token goes to login", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard", "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("non-GET without a token sees a 303", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/dashboard", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("root prefix closes the whole portal", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, "/", "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("login and unauthorized stay reachable", func(t *testing.T) {
		resp := doRequest(t, app, fiber.MethodGet, "/login", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = doRequest(t, app, fiber.MethodGet, "/unauthorized", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGateValidatesTokens(t *testing.T) {
	t.Run("valid token proceeds", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "USER"}})
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard", "sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejected token goes back to login", func(t *testing.T) {
		app := newGateApp(stubValidator{err: errors.New("token is expired")})
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard", "sometoken")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("bearer header works as a token source", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "USER"}})

		req := httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer sometoken")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGateDataTableAccess(t *testing.T) {
	t.Run("USER is turned away from the data tables", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "USER"}})
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard/dbdata/candidates", "sometoken")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})

	t.Run("SUPER_ADMIN is turned away as well", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "SUPER_ADMIN"}})
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard/dbdata/candidates", "sometoken")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/unauthorized", resp.Header.Get("Location"))
	})

	t.Run("ADMIN passes", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "ADMIN"}})
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard/dbdata/candidates", "sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("dbdata outside the dashboard is not restricted", func(t *testing.T) {
		app := newGateApp(stubValidator{claims: stubClaims{id: "u1", role: "USER"}})
		resp := doRequest(t, app, fiber.MethodGet, "/files/dbdata", "sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("custom access decision is honored", func(t *testing.T) {
		app := newGateApp(
			stubValidator{claims: stubClaims{id: "u1", role: "USER"}},
			gateware.Config{
				DataTableAccess: func(claims gateware.AuthClaims) bool { return true },
			},
		)
		resp := doRequest(t, app, fiber.MethodGet, "/dashboard/dbdata/candidates", "sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGateContextPropagation(t *testing.T) {
	validator := stubValidator{claims: stubClaims{id: "u1", role: "ADMIN"}}

	app := fiber.New()
	app.Use(gateware.New(gateware.Config{Validator: validator}))
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		claims, ok := c.Locals("session").(gateware.AuthClaims)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(claims.UserID())
	})

	req := httptest.NewRequest(fiber.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "exam_session", Value: "sometoken"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateFilter(t *testing.T) {
	app := newGateApp(
		stubValidator{err: errors.New("should never run")},
		gateware.Config{
			Filter: func(c *fiber.Ctx) bool { return true },
		},
	)

	resp := doRequest(t, app, fiber.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetDefaultConfig(t *testing.T) {
	t.Run("requires a validator", func(t *testing.T) {
		assert.Panics(t, func() {
			gateware.GetDefaultConfig(gateware.Config{})
		})
	})

	t.Run("fills in the route policy", func(t *testing.T) {
		cfg := gateware.GetDefaultConfig(gateware.Config{Validator: stubValidator{}})
		assert.Equal(t, "session", cfg.ContextKey)
		assert.Equal(t, "/login", cfg.LoginRoute)
		assert.Equal(t, "/unauthorized", cfg.UnauthorizedRoute)
		assert.Equal(t, "/dashboard", cfg.DashboardPrefix)
		assert.Equal(t, "/dbdata", cfg.DataTableSegment)
		assert.Contains(t, cfg.ProtectedPrefixes, "/")
		assert.Contains(t, cfg.SkipRoutes, "/login")
		assert.Contains(t, cfg.SkipRoutes, "/unauthorized")
		assert.NotNil(t, cfg.DataTableAccess)
	})
}
