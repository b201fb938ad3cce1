package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// CandidateProvider is the credential verifier. It owns the DOB comparison
// policy and never mutates login state; flipping the logged-in flag is the
// SessionIssuer's job so a failed verification cannot mark a session active.
type CandidateProvider struct {
	store  CandidateStore
	logger Logger
}

// NewCandidateProvider will create a new CandidateProvider
func NewCandidateProvider(store CandidateStore) *CandidateProvider {
	return &CandidateProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (p *CandidateProvider) WithLogger(l Logger) *CandidateProvider {
	if l != nil {
		p.logger = l
	}
	return p
}

// Verify validates a (hallticket, dob) pair against the stored record and
// returns the identity claims on a match.
//
// An unknown hall ticket and a DOB mismatch both come back as
// ErrInvalidCredential; callers must not be able to tell which field was
// wrong.
func (p CandidateProvider) Verify(ctx context.Context, hallticket, dob string) (*IdentityClaims, error) {
	if hallticket == "" || dob == "" {
		return nil, ErrMissingCredential
	}

	candidate, err := p.store.FindByHallticket(ctx, hallticket)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.IsNotFound(err) {
			return nil, ErrInvalidCredential
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve candidate during verification")
	}

	if candidate == nil {
		return nil, ErrInvalidCredential
	}

	if candidate.IsLoggedIn {
		return nil, ErrConcurrentSession
	}

	formattedDOB, err := reformatDOB(dob)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	if err := CompareDOBAndHash(formattedDOB, candidate.DOBHash); err != nil {
		if IsInvalidCredentialError(err) {
			return nil, ErrInvalidCredential
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare date of birth")
	}

	if !candidate.Role.IsValid() {
		return nil, errors.New("candidate has an unknown or invalid role", errors.CategoryAuth).
			WithTextCode("INVALID_ROLE").
			WithMetadata(map[string]any{"role": string(candidate.Role), "candidate_id": candidate.ID.String()})
	}

	return candidate.Claims(), nil
}

var _ Verifier = CandidateProvider{}
