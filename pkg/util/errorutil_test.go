package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("campo requerido")
	mapped := ToDomainError(original)
	require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	require.Equal(t, "campo requerido", mapped.Message)
}

func TestToDomainErrorFiberError(t *testing.T) {
	mapped := ToDomainError(fiber.ErrNotFound)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	require.Equal(t, fiber.ErrNotFound.Message, mapped.Message)

	mapped = ToDomainError(fiber.NewError(http.StatusRequestEntityTooLarge, "body too large"))
	require.Equal(t, http.StatusRequestEntityTooLarge, mapped.HTTPStatus)
}

func TestToDomainErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	mapped := ToDomainError(pgErr)
	require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	require.Equal(t, "La operación viola referencias existentes", mapped.Message)

	// other pg errors stay internal
	mapped = ToDomainError(&pgconn.PgError{Code: "42P01"})
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	require.Equal(t, "Error interno del servidor", mapped.Message)
}
