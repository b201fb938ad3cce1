package auth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BeginSessionSQL is the single conditional update that enforces the
// single-session invariant: the write only lands when the record is not
// already marked logged in, so concurrent logins cannot both win.
var BeginSessionSQL = `UPDATE "candidates" AS "cnd"
SET
	"is_logged_in" = TRUE,
	"logged_in_at" = ?,
	"ip_address" = ?
WHERE
	"cnd"."deleted_at" IS NULL
AND "cnd"."is_logged_in" = FALSE
AND (
	"cnd"."id" = ?
);`

// EndSessionSQL clears the flag unconditionally for the record, which is what
// makes sign-out idempotent.
var EndSessionSQL = `UPDATE "candidates" AS "cnd"
SET
	"is_logged_in" = FALSE
WHERE
	"cnd"."deleted_at" IS NULL
AND (
	"cnd"."id" = ?
);`

type Candidates interface {
	repository.Repository[*Candidate]

	GetByHallticket(ctx context.Context, hallticket string) (*Candidate, error)
	GetByHallticketTx(ctx context.Context, tx bun.IDB, hallticket string) (*Candidate, error)
	// FindByHallticket aliases GetByHallticket so the repo satisfies CandidateStore
	FindByHallticket(ctx context.Context, hallticket string) (*Candidate, error)

	BeginSession(ctx context.Context, id uuid.UUID, at time.Time, ipAddress string) (bool, error)
	BeginSessionTx(ctx context.Context, tx bun.IDB, id uuid.UUID, at time.Time, ipAddress string) (bool, error)
	EndSession(ctx context.Context, id uuid.UUID) error
	EndSessionTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error

	Import(ctx context.Context, record *Candidate) (*Candidate, error)
	ImportTx(ctx context.Context, tx bun.IDB, record *Candidate) (*Candidate, error)
}

type candidates struct {
	repository.Repository[*Candidate]
	db *bun.DB
}

var (
	_ Candidates                        = (*candidates)(nil)
	_ repository.Repository[*Candidate] = (*candidates)(nil)
	_ CandidateStore                    = (*candidates)(nil)
)

func NewCandidatesRepository(db *bun.DB) Candidates {
	repo := repository.NewRepository[*Candidate](db, repository.ModelHandlers[*Candidate]{
		NewRecord: func() *Candidate { return &Candidate{} },
		GetID: func(c *Candidate) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Candidate, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "hallticket"
		},
	})

	return &candidates{
		Repository: repo,
		db:         db,
	}
}

func (a *candidates) GetByHallticket(ctx context.Context, hallticket string) (*Candidate, error) {
	return a.GetByHallticketTx(ctx, a.db, hallticket)
}

func (a *candidates) GetByHallticketTx(ctx context.Context, tx bun.IDB, hallticket string) (*Candidate, error) {
	hallticket = strings.TrimSpace(hallticket)
	if hallticket == "" {
		return nil, repository.NewRecordNotFound()
	}

	record := &Candidate{}
	err := tx.NewSelect().
		Model(record).
		Where(`?TableAlias."hallticket" = ?`, hallticket).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"hallticket": hallticket,
				})
		}
		return nil, err
	}

	return record, nil
}

// FindByHallticket satisfies CandidateStore
func (a *candidates) FindByHallticket(ctx context.Context, hallticket string) (*Candidate, error) {
	return a.GetByHallticket(ctx, hallticket)
}

func (a *candidates) BeginSession(ctx context.Context, id uuid.UUID, at time.Time, ipAddress string) (bool, error) {
	return a.BeginSessionTx(ctx, a.db, id, at, ipAddress)
}

func (a *candidates) BeginSessionTx(ctx context.Context, tx bun.IDB, id uuid.UUID, at time.Time, ipAddress string) (bool, error) {
	res, err := tx.NewRaw(BeginSessionSQL, at, ipAddress, id).Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (a *candidates) EndSession(ctx context.Context, id uuid.UUID) error {
	return a.EndSessionTx(ctx, a.db, id)
}

func (a *candidates) EndSessionTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewRaw(EndSessionSQL, id).Exec(ctx)
	return err
}

func (a *candidates) Import(ctx context.Context, record *Candidate) (*Candidate, error) {
	return a.ImportTx(ctx, a.db, record)
}

func (a *candidates) ImportTx(ctx context.Context, tx bun.IDB, record *Candidate) (*Candidate, error) {
	prepareCandidateDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record)
}

func prepareCandidateDefaults(record *Candidate) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
