// Package store implements the service storage interfaces on top of bun.
// Every driver error leaves this package classified by db.Classify.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/service"
)

const (
	eventsTable = "events"
	teamsTable  = "teams"
	usersTable  = "users"
)

var (
	_ service.EventStore       = (*Store)(nil)
	_ service.TeamStore        = (*Store)(nil)
	_ service.ResultEventStore = (*Store)(nil)
	_ service.UserStore        = (*Store)(nil)
)

// Store is the PostgreSQL repository. It is safe for concurrent use; all
// state lives in the database handle passed to New.
type Store struct {
	db bun.IDB
}

// New wraps a database handle (or transaction) in a Store.
func New(idb bun.IDB) *Store {
	return &Store{db: idb}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return db.HealthCheck(ctx, s.db)
}

func affected(res sql.Result, err error, table string) (bool, error) {
	if err != nil {
		return false, db.Classify(err, table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, db.Classify(err, table)
	}
	return n > 0, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
