package auth

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDB opens a sqlite backed bun database. Hosts that already manage their
// own *bun.DB can skip this and call NewRepositoryManager directly.
func OpenDB(dsn string) (*bun.DB, error) {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open candidate database")
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateCandidatesTable creates the candidates table if needed. Meant for
// bootstrap scripts and tests; production schemas belong to the roster
// tooling.
func CreateCandidatesTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*Candidate)(nil)).
		IfNotExists().
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create candidates table")
	}

	return nil
}
