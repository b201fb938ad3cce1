package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the candidate's role. It is a closed set: every switch over it
// should enumerate all three variants.
type Role string

const (
	// RoleUser is a regular exam candidate
	RoleUser Role = "USER"
	// RoleAdmin can additionally access the data-table area of the dashboard
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin is reserved for portal operators
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Candidate is the stored exam candidate record. The core only reads it and
// writes the login-state columns; everything else belongs to the roster.
type Candidate struct {
	bun.BaseModel `bun:"table:candidates,alias:cnd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Hallticket    string     `bun:"hallticket,notnull,unique" json:"hallticket,omitempty"`
	Role          Role       `bun:"role,notnull" json:"role,omitempty"`
	ExamRoom      string     `bun:"examroom" json:"examroom,omitempty"`
	ExamSlot      string     `bun:"examslot" json:"examslot,omitempty"`
	ExamDate      string     `bun:"examdate" json:"examdate,omitempty"`
	DOBHash       string     `bun:"dob_hash,notnull" json:"-"`
	IsLoggedIn    bool       `bun:"is_logged_in" json:"is_logged_in,omitempty"`
	LoggedInAt    *time.Time `bun:"logged_in_at,nullzero" json:"logged_in_at,omitempty"`
	IPAddress     string     `bun:"ip_address" json:"ip_address,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Claims builds the canonical IdentityClaims for a verified candidate. The
// DOB hash rides along server-side only; the SessionView projection is the
// single place where it gets stripped.
func (c *Candidate) Claims() *IdentityClaims {
	return &IdentityClaims{
		CandidateID:   c.ID.String(),
		Name:          c.Name,
		Hallticket:    c.Hallticket,
		CandidateRole: c.Role,
		ExamRoom:      c.ExamRoom,
		ExamSlot:      c.ExamSlot,
		ExamDate:      c.ExamDate,
		DOB:           c.DOBHash,
	}
}
