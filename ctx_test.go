package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClaims(t *testing.T) {
	tests := []struct {
		name     string
		setupCtx func() context.Context
		wantOK   bool
	}{
		{
			name: "returns claims when present in context",
			setupCtx: func() context.Context {
				claims := &IdentityClaims{
					CandidateID:   "candidate-1",
					Hallticket:    "HT001",
					CandidateRole: RoleUser,
				}
				return WithClaimsContext(context.Background(), claims)
			},
			wantOK: true,
		},
		{
			name: "returns false when no claims in context",
			setupCtx: func() context.Context {
				return context.Background()
			},
			wantOK: false,
		},
		{
			name: "returns false when context has wrong type",
			setupCtx: func() context.Context {
				return context.WithValue(context.Background(), claimsCtxKey, "not-a-claims-object")
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims, gotOK := GetClaims(tt.setupCtx())

			assert.Equal(t, tt.wantOK, gotOK)
			if tt.wantOK {
				require.NotNil(t, gotClaims)
				assert.Equal(t, "HT001", gotClaims.Hallticket)
			} else {
				assert.Nil(t, gotClaims)
			}
		})
	}
}

func TestGetLocalClaims(t *testing.T) {
	claims := &IdentityClaims{
		CandidateID:   "candidate-1",
		Hallticket:    "HT001",
		CandidateRole: RoleAdmin,
	}

	run := func(t *testing.T, key string, value any, lookupKey string) (*IdentityClaims, bool) {
		t.Helper()

		var got *IdentityClaims
		var ok bool

		app := fiber.New()
		app.Get("/whoami", func(c *fiber.Ctx) error {
			if value != nil {
				c.Locals(key, value)
			}
			got, ok = GetLocalClaims(c, lookupKey)
			return c.SendString("ok")
		})

		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		return got, ok
	}

	t.Run("reads claims from locals", func(t *testing.T) {
		got, ok := run(t, "session", claims, "session")
		require.True(t, ok)
		assert.Equal(t, "HT001", got.Hallticket)
	})

	t.Run("empty key falls back to the default", func(t *testing.T) {
		got, ok := run(t, DefaultContextKey, claims, "")
		require.True(t, ok)
		assert.Equal(t, "HT001", got.Hallticket)
	})

	t.Run("missing local", func(t *testing.T) {
		_, ok := run(t, "", nil, "session")
		assert.False(t, ok)
	})

	t.Run("wrong type stored", func(t *testing.T) {
		_, ok := run(t, "session", "not-claims", "session")
		assert.False(t, ok)
	})
}

func TestGetSessionFromFiberCtx(t *testing.T) {
	claims := &IdentityClaims{
		CandidateID:   "9a2f1c7e-55cc-4c10-8d5e-0d6a3b1f9f00",
		Hallticket:    "HT001",
		CandidateRole: RoleUser,
		DOB:           "$2a$10$abcdefghijklmnopqrstuv",
	}

	t.Run("builds the session view from locals", func(t *testing.T) {
		var session Session
		var sessionErr error

		app := fiber.New()
		app.Get("/whoami", func(c *fiber.Ctx) error {
			c.Locals(DefaultContextKey, claims)
			session, sessionErr = GetSession(c, "")
			return c.SendString("ok")
		})

		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		require.NoError(t, sessionErr)
		assert.Equal(t, "HT001", session.GetHallticket())

		_, hasDOB := session.GetData()["dob"]
		assert.False(t, hasDOB)
	})

	t.Run("no claims means no session", func(t *testing.T) {
		var sessionErr error

		app := fiber.New()
		app.Get("/whoami", func(c *fiber.Ctx) error {
			_, sessionErr = GetSession(c, "")
			return c.SendString("ok")
		})

		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, ErrUnableToFindSession, sessionErr)
	})
}
