package errors

import (
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"
)

// Postgres error classes relevant to the store contract. Constraint
// violations are surfaced synchronously to the caller and never retried.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// FromPostgres classifies a driver error into the store's error taxonomy.
// Unknown errors become ErrInternalServer.
func FromPostgres(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, sql.ErrNoRows) {
		return NewAppError(ErrNotFound, message, err)
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return NewAppError(ErrAlreadyExists, message, err)
		case pgForeignKeyViolation:
			return NewAppError(ErrInvalidReference, message, err)
		case pgCheckViolation:
			return NewAppError(ErrInvalidDomainValue, message, err)
		case pgNotNullViolation:
			return NewAppError(ErrMissingField, message, err)
		}
	}

	return NewAppError(ErrInternalServer, message, err)
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error,
// for call sites that treat duplicates as a normal outcome.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
