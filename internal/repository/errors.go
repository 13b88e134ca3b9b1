package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/blockedby/starred-jobs/internal/apperror"
)

// sqlite primary result codes.
const (
	sqliteBusy       = 5
	sqliteLocked     = 6
	sqliteConstraint = 19
)

// sqliteCoder is satisfied by the pure-Go sqlite driver's error type.
type sqliteCoder interface {
	Code() int
}

// classify tags a driver error with its apperror kind. The message is the
// user-facing text for the failed operation.
func classify(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(apperror.KindNotFound, message, err)
	}

	kind := apperror.KindDatabase

	var pgErr *pgconn.PgError
	var sqErr sqliteCoder
	switch {
	case errors.As(err, &pgErr):
		kind = postgresKind(pgErr.Code)
	case errors.As(err, &sqErr):
		kind = sqliteKind(sqErr.Code())
	}

	// constraint and busy failures carry their generic text, not the operation's
	if kind != apperror.KindDatabase {
		message = ""
	}
	return apperror.Wrap(kind, message, err)
}

func sqliteKind(code int) apperror.Kind {
	switch code & 0xff {
	case sqliteConstraint:
		return apperror.KindConstraint
	case sqliteBusy, sqliteLocked:
		return apperror.KindDatabaseBusy
	default:
		return apperror.KindDatabase
	}
}

func postgresKind(code string) apperror.Kind {
	switch {
	case len(code) >= 2 && code[:2] == "23":
		return apperror.KindConstraint
	case code == "40001", code == "40P01", code == "55P03", code == "53300", code == "57P03":
		return apperror.KindDatabaseBusy
	default:
		return apperror.KindDatabase
	}
}
