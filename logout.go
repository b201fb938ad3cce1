package auth

import (
	"context"

	"github.com/google/uuid"
)

// LogoutReconciler clears the logged-in flag on sign out so the candidate can
// log in again. Logout must never fail visibly: the client token is discarded
// regardless, so persistence failures are logged and swallowed. Clearing an
// already cleared flag is a no-op, which makes repeated calls safe.
type LogoutReconciler struct {
	store  CandidateStore
	logger Logger
}

// NewLogoutReconciler will create a new LogoutReconciler
func NewLogoutReconciler(store CandidateStore) *LogoutReconciler {
	return &LogoutReconciler{
		store:  store,
		logger: defLogger{},
	}
}

func (r *LogoutReconciler) WithLogger(l Logger) *LogoutReconciler {
	if l != nil {
		r.logger = l
	}
	return r
}

// OnSignOut resets is_logged_in for the candidate identified by the claims id
func (r LogoutReconciler) OnSignOut(ctx context.Context, candidateID string) {
	id, err := uuid.Parse(candidateID)
	if err != nil {
		r.logger.Warn("logout reconciler got an invalid candidate id: candidate_id=%s error=%v", candidateID, err)
		return
	}

	if err := r.store.EndSession(ctx, id); err != nil {
		r.logger.Error("logout reconciler failed to clear login state: candidate_id=%s error=%v", candidateID, err)
	}
}
