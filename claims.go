package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the canonical claim set established at login. It is the
// one shape the token carries; SessionView is derived from it and never
// includes the DOB hash.
type IdentityClaims struct {
	jwt.RegisteredClaims
	CandidateID   string `json:"uid,omitempty"`
	Name          string `json:"name,omitempty"`
	Hallticket    string `json:"hallticket,omitempty"`
	CandidateRole Role   `json:"role,omitempty"`
	ExamRoom      string `json:"examroom,omitempty"`
	ExamSlot      string `json:"examslot,omitempty"`
	ExamDate      string `json:"examdate,omitempty"`
	// DOB is the stored bcrypt hash, carried server-side only. It must never
	// cross the SessionView boundary.
	DOB string `json:"dob,omitempty"`
}

// Subject returns the subject claim
func (c *IdentityClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the candidate ID
func (c *IdentityClaims) UserID() string {
	if c.CandidateID != "" {
		return c.CandidateID
	}
	return c.Subject()
}

// Role returns the candidate role as a string, for consumers that cannot
// depend on the Role type
func (c *IdentityClaims) Role() string {
	return string(c.CandidateRole)
}

// HasRole checks if the candidate has a specific role
func (c *IdentityClaims) HasRole(role string) bool {
	return string(c.CandidateRole) == role
}

// CanViewDataTables reports whether the claims authorize the data-table area
func (c *IdentityClaims) CanViewDataTables() bool {
	return c.CandidateRole.CanViewDataTables()
}

// Expires returns the expiration time
func (c *IdentityClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *IdentityClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
