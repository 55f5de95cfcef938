package postgres

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-register/internal/domain"
)

// builder genera SQL con placeholders $1, $2...
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapErr traduce un error de pgx al vocabulario del dominio.
// Sin filas -> ErrNotFound; duplicado -> ErrInvalidInput; el resto es un fallo de transporte.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return domain.NewTransportError(op, err)
}

// branchFilter agrega WHERE <column> = branch salvo que branch esté vacío (todas las sucursales).
func branchFilter(b sq.SelectBuilder, column, branch string) sq.SelectBuilder {
	if branch == "" {
		return b
	}
	return b.Where(sq.Eq{column: branch})
}
