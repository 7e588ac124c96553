package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDBError_NoRowsBecomesNotFound(t *testing.T) {
	err := ClassifyDBError("get order", pgx.ErrNoRows)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get order")
}

func TestClassifyDBError_ConstraintCodes(t *testing.T) {
	cases := []struct {
		name string
		code string
		want error
	}{
		{"foreign key", "23503", ErrConflict},
		{"unique", "23505", ErrConflict},
		{"check", "23514", ErrInvalidArgument},
		{"exclusion", "23P01", ErrConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ClassifyDBError("create booking", &pgconn.PgError{Code: tc.code})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClassifyDBError_UnknownErrorStaysUnclassified(t *testing.T) {
	cause := errors.New("connection reset")
	err := ClassifyDBError("list orders", cause)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsClassified(err))
}

func TestClassifyDBError_NilPassesThrough(t *testing.T) {
	assert.NoError(t, ClassifyDBError("anything", nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: no such order", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: table already booked", ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: beef is short", ErrInsufficientInventory), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: second consume", ErrAlreadyConsumed), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}
