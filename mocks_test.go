package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/examsecure/go-exam-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockCandidateStore implements auth.CandidateStore
type MockCandidateStore struct {
	mock.Mock
}

func (m *MockCandidateStore) FindByHallticket(ctx context.Context, hallticket string) (*auth.Candidate, error) {
	args := m.Called(ctx, hallticket)
	if candidate, ok := args.Get(0).(*auth.Candidate); ok {
		return candidate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCandidateStore) BeginSession(ctx context.Context, id uuid.UUID, at time.Time, ipAddress string) (bool, error) {
	args := m.Called(ctx, id, at, ipAddress)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateStore) EndSession(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// noopLogger swallows everything, for tests that only care about behavior
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MockLoginPayload implements auth.LoginPayload
type MockLoginPayload struct {
	Hallticket string
	DOB        string
}

func (m MockLoginPayload) GetHallticket() string {
	return m.Hallticket
}

func (m MockLoginPayload) GetDOB() string {
	return m.DOB
}

func testConfig() *auth.SimpleConfig {
	return &auth.SimpleConfig{
		SigningKey: "test-signing-key",
		Issuer:     "exam-portal",
		Audience:   []string{"exam-portal"},
	}
}

// newTestCandidate builds a candidate record whose DOB hash matches storedDOB
// in DD-MM-YYYY form. MinCost keeps the bcrypt work factor out of test time.
func newTestCandidate(t *testing.T, hallticket, storedDOB string, role auth.Role) *auth.Candidate {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(storedDOB), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.Candidate{
		ID:         uuid.New(),
		Name:       "Asha Rao",
		Hallticket: hallticket,
		Role:       role,
		ExamRoom:   "B-204",
		ExamSlot:   "FN",
		ExamDate:   "2026-09-12",
		DOBHash:    string(hash),
	}
}
