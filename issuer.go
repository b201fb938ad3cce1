package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// SessionIssuer commits the login: it stamps is_logged_in, logged_in_at and
// ip_address against the verified record. The write is a single conditional
// update keyed on is_logged_in = false, so the verify-then-issue sequence
// cannot let two concurrent logins for the same candidate both succeed.
type SessionIssuer struct {
	store  CandidateStore
	logger Logger
}

// NewSessionIssuer will create a new SessionIssuer
func NewSessionIssuer(store CandidateStore) *SessionIssuer {
	return &SessionIssuer{
		store:  store,
		logger: defLogger{},
	}
}

func (i *SessionIssuer) WithLogger(l Logger) *SessionIssuer {
	if l != nil {
		i.logger = l
	}
	return i
}

// Issue marks the candidate as logged in. Returns ErrConcurrentSession when
// the conditional update loses the race, ErrIssuanceFailed on any persistence
// failure; in both cases the caller must not hand out a token.
func (i SessionIssuer) Issue(ctx context.Context, claims *IdentityClaims, clientAddress string) error {
	if claims == nil {
		return errors.New("claims must not be nil", errors.CategoryInternal)
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "claims carry an invalid candidate id").
			WithTextCode(TextCodeIssuanceFailed)
	}

	committed, err := i.store.BeginSession(ctx, id, time.Now(), clientAddress)
	if err != nil {
		i.logger.Error("session issuer failed to persist login state: candidate_id=%s error=%v", id.String(), err)
		return errors.Wrap(err, ErrIssuanceFailed.Category, ErrIssuanceFailed.Message).
			WithTextCode(ErrIssuanceFailed.TextCode)
	}

	if !committed {
		return ErrConcurrentSession
	}

	return nil
}
