package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// ImportCandidateMessage carries one roster row. DOB arrives in the storage
// format (DD-MM-YYYY) and is hashed before anything touches the database.
type ImportCandidateMessage struct {
	Name       string `json:"name"`
	Hallticket string `json:"hallticket"`
	Role       string `json:"role"`
	ExamRoom   string `json:"examroom"`
	ExamSlot   string `json:"examslot"`
	ExamDate   string `json:"examdate"`
	DOB        string `json:"dob"`
	UseHashid  bool
}

func (e ImportCandidateMessage) Type() string { return "candidate.import" }

// ImportCandidateHandler loads roster rows into the candidate store
type ImportCandidateHandler struct {
	repo RepositoryManager
}

// NewImportCandidateHandler builds the handler for a repository manager
func NewImportCandidateHandler(repo RepositoryManager) *ImportCandidateHandler {
	return &ImportCandidateHandler{repo: repo}
}

func (h *ImportCandidateHandler) Execute(ctx context.Context, event ImportCandidateMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during candidate import",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ImportCandidateHandler) execute(ctx context.Context, event ImportCandidateMessage) error {
	candidate := &Candidate{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	role, ok := ParseRole(event.Role)
	if !ok && event.Role != "" {
		return goerrors.New("unknown candidate role", goerrors.CategoryValidation).
			WithMetadata(map[string]any{"role": event.Role, "hallticket": event.Hallticket})
	}

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashDOB(event.DOB)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid date of birth provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash date of birth")
		}

		candidate.DOBHash = hash
		candidate.Name = event.Name
		candidate.Hallticket = event.Hallticket
		candidate.Role = role
		candidate.ExamRoom = event.ExamRoom
		candidate.ExamSlot = event.ExamSlot
		candidate.ExamDate = event.ExamDate
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Hallticket); err == nil {
				candidate.ID = id
			}
		}

		if candidate, err = h.repo.Candidates().ImportTx(ctx, tx, candidate); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not import candidate")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "candidate import transaction failed")
	}

	return nil
}
