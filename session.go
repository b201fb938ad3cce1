package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ Session = &SessionView{}

// SessionView is the client visible projection of IdentityClaims. It is a
// direct field copy minus the DOB hash, plus the token expiry.
type SessionView struct {
	UserID     string     `json:"user_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Hallticket string     `json:"hallticket,omitempty"`
	Role       Role       `json:"role,omitempty"`
	ExamRoom   string     `json:"examroom,omitempty"`
	ExamSlot   string     `json:"examslot,omitempty"`
	ExamDate   string     `json:"examdate,omitempty"`
	Expiration *time.Time `json:"exp,omitempty"`
}

func (s *SessionView) GetUserID() string {
	return s.UserID
}

func (s *SessionView) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionView) GetHallticket() string {
	return s.Hallticket
}

func (s *SessionView) GetRole() Role {
	return s.Role
}

func (s *SessionView) GetExpiration() *time.Time {
	return s.Expiration
}

func (s *SessionView) GetData() map[string]any {
	data := map[string]any{
		"hallticket": s.Hallticket,
		"role":       string(s.Role),
		"examroom":   s.ExamRoom,
		"examslot":   s.ExamSlot,
		"examdate":   s.ExamDate,
	}
	if s.Name != "" {
		data["name"] = s.Name
	}
	return data
}

func (s SessionView) String() string {
	exp := "<nil>"
	if s.Expiration != nil {
		exp = s.Expiration.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s hallticket=%s role=%s room=%s slot=%s date=%s exp=%s",
		s.UserID,
		s.Hallticket,
		s.Role,
		s.ExamRoom,
		s.ExamSlot,
		s.ExamDate,
		exp,
	)
}

// NewSessionView projects IdentityClaims into the client visible session.
// This is the single place the DOB hash is stripped; keep it that way.
func NewSessionView(claims *IdentityClaims) (*SessionView, error) {
	if claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	view := &SessionView{
		UserID:     claims.UserID(),
		Name:       claims.Name,
		Hallticket: claims.Hallticket,
		Role:       claims.CandidateRole,
		ExamRoom:   claims.ExamRoom,
		ExamSlot:   claims.ExamSlot,
		ExamDate:   claims.ExamDate,
	}

	if claims.RegisteredClaims.ExpiresAt != nil {
		exp := claims.RegisteredClaims.ExpiresAt.Time
		view.Expiration = &exp
	}

	return view, nil
}
