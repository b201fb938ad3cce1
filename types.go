package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Session holds the client visible attributes of an auth session
type Session interface {
	GetUserID() string
	GetUserUUID() (uuid.UUID, error)
	GetHallticket() string
	GetRole() Role
	GetExpiration() *time.Time
	GetData() map[string]any
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, hallticket, dob, clientAddress string) (string, error)
	SessionFromToken(token string) (Session, error)
	Logout(ctx context.Context, candidateID string)
}

type LoginPayload interface {
	GetHallticket() string
	GetDOB() string
}

// CandidateStore is the persistence collaborator the core depends on.
// BeginSession must be a conditional update: it returns false without error
// when the record is already marked logged in.
type CandidateStore interface {
	FindByHallticket(ctx context.Context, hallticket string) (*Candidate, error)
	BeginSession(ctx context.Context, id uuid.UUID, at time.Time, ipAddress string) (bool, error)
	EndSession(ctx context.Context, id uuid.UUID) error
}

// Verifier validates a credential pair and produces claims
type Verifier interface {
	Verify(ctx context.Context, hallticket, dob string) (*IdentityClaims, error)
}

// TokenService handles token generation and validation, the claims codec
type TokenService interface {
	Generate(claims *IdentityClaims) (string, error)
	SignClaims(claims *IdentityClaims) (string, error)
	Validate(tokenString string) (*IdentityClaims, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() time.Duration
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
	GetLoginRoute() string
	GetUnauthorizedRoute() string
	GetProtectedPrefixes() []string
	GetDashboardPrefix() string
	GetDataTableSegment() string
	GetRejectedRouteKey() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
