package auth

import (
	"context"
)

// Auther drives the login state machine: verify credentials, commit the
// single-session flag, sign the claims. It is the only producer of tokens.
type Auther struct {
	verifier     Verifier
	issuer       *SessionIssuer
	reconciler   *LogoutReconciler
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store
func NewAuthenticator(store CandidateStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		verifier:     NewCandidateProvider(store),
		issuer:       NewSessionIssuer(store),
		reconciler:   NewLogoutReconciler(store),
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger == nil {
		return s
	}
	s.logger = logger
	if v, ok := s.verifier.(*CandidateProvider); ok {
		v.WithLogger(logger)
	}
	s.issuer.WithLogger(logger)
	s.reconciler.WithLogger(logger)
	return s
}

// WithVerifier swaps the credential verifier, mostly for tests
func (s *Auther) WithVerifier(v Verifier) *Auther {
	if v != nil {
		s.verifier = v
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login runs the full sequence for a credential pair. Ordering matters:
// verification never mutates state, issuance commits the logged-in flag, and
// only a committed issuance produces a token.
func (s *Auther) Login(ctx context.Context, hallticket, dob, clientAddress string) (string, error) {
	claims, err := s.verifier.Verify(ctx, hallticket, dob)
	if err != nil {
		s.logger.Error("Login verify identity error: hallticket=%s error=%v", hallticket, err)
		return "", err
	}

	if err := s.issuer.Issue(ctx, claims, clientAddress); err != nil {
		s.logger.Error("Login issuance error: hallticket=%s error=%v", hallticket, err)
		return "", err
	}

	token, err := s.tokenService.Generate(claims)
	if err != nil {
		s.logger.Error("Login token generation error: hallticket=%s error=%v", hallticket, err)
		// The flag is committed but the candidate never got a token; release
		// the session so a retry is possible.
		s.reconciler.OnSignOut(ctx, claims.UserID())
		return "", err
	}

	return token, nil
}

// SessionFromToken decodes a token into the client visible session view
func (s Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed: %v", err)
		return nil, err
	}

	session, err := NewSessionView(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims: %v", err)
		return nil, err
	}

	return session, nil
}

// Logout clears the logged-in flag. It never returns an error; failures are
// absorbed by the reconciler.
func (s *Auther) Logout(ctx context.Context, candidateID string) {
	s.reconciler.OnSignOut(ctx, candidateID)
}

var _ Authenticator = (*Auther)(nil)
