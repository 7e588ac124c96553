package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classified engine errors. Every engine operation either commits fully or
// returns one of these (or a wrapped storage error) with nothing written.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrConflict              = errors.New("conflict")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrAlreadyConsumed       = errors.New("already consumed")
)

// Postgres SQLSTATE codes translated into user-facing messages, mirroring the
// constraint names the schema uses.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

// ClassifyDBError maps storage-level failures onto the classified taxonomy.
// pgx.ErrNoRows becomes ErrNotFound; constraint violations become the
// matching classified error with a plain-language message; anything else is
// wrapped with the operation name and surfaces as a generic storage failure.
func ClassifyDBError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: related records exist", ErrConflict)
		case pgUniqueViolation:
			return fmt.Errorf("%w: value already exists", ErrConflict)
		case pgCheckViolation:
			return fmt.Errorf("%w: value out of allowed range", ErrInvalidArgument)
		case pgExclusionViolation:
			return fmt.Errorf("%w: requested time overlaps another booking", ErrConflict)
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// HTTPStatus maps a classified error onto the response code handlers use.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientInventory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAlreadyConsumed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsClassified reports whether err belongs to the engine taxonomy, as opposed
// to an unclassified storage failure that should be logged and hidden.
func IsClassified(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInsufficientInventory) ||
		errors.Is(err, ErrAlreadyConsumed)
}
