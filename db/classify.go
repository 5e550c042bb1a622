package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/padraicbc/rogainizer/apperr"
)

// SQLSTATE codes (PostgreSQL) and error numbers (MySQL) the service distinguishes.
const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
	myNoSuchTable     = 1146
	myDuplicateEntry  = 1062
	duplicateKeyMsg   = "duplicate key"
)

// Classify converts a driver error into the apperr taxonomy. table names the
// table the failing statement targeted and feeds the schema remediation hint.
// Errors that are already classified pass through unchanged.
func Classify(err error, table string) error {
	if err == nil {
		return nil
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case pgUndefinedTable:
			return apperr.Schema(table, err)
		case pgUniqueViolation:
			return &apperr.Error{Kind: apperr.ErrConflict, Msg: duplicateKeyMsg, Err: err}
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myNoSuchTable:
			return apperr.Schema(table, err)
		case myDuplicateEntry:
			return &apperr.Error{Kind: apperr.ErrConflict, Msg: duplicateKeyMsg, Err: err}
		}
	}

	return apperr.Storage(err)
}
