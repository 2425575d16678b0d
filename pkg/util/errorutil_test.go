package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewConflict("email already registered", nil)
	mapped := ToDomainError(original)
	require.Equal(t, "CONFLICT", mapped.Code)
	require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", mapped.Code)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorMapsUniqueViolations(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	mapped := ToDomainError(pgErr)
	require.Equal(t, "CONFLICT", mapped.Code)
	require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorHidesInternalCauses(t *testing.T) {
	cause := errors.New("connection refused")
	mapped := ToDomainError(cause)
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
	require.Equal(t, "internal server error", mapped.Message)
	require.ErrorIs(t, mapped, cause)
}
