package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ledger-api/internal/domain"
)

// psql constructor de SQL con placeholders $n.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	return false
}

// storeErr clasifica un fallo del driver: llaves foráneas son ErrConflict, CHECK es ErrInvalidInput,
// la cancelación del contexto se propaga tal cual y el resto es ErrStore.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStore, err)
	}
}

// lockRow SELECT id ... FOR UPDATE sobre una sola fila, sin joins.
func lockRow(table, id string) squirrel.SelectBuilder {
	return psql.Select("id").From(table).Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE")
}

// exec construye y ejecuta una sentencia de escritura.
func exec(ctx context.Context, q Querier, op string, b squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("%s: build: %w", op, err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return tag, storeErr(op, err)
	}
	return tag, nil
}

// selectAll construye la consulta y escanea todas las filas en dst (slice).
func selectAll(ctx context.Context, q Querier, op string, dst any, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build: %w", op, err)
	}
	if err := pgxscan.Select(ctx, q, dst, sql, args...); err != nil {
		return storeErr(op, err)
	}
	return nil
}

// getOne escanea una fila en dst. Devuelve (false, nil) si no hay filas.
func getOne(ctx context.Context, q Querier, op string, dst any, b squirrel.Sqlizer) (bool, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: build: %w", op, err)
	}
	if err := pgxscan.Get(ctx, q, dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, storeErr(op, err)
	}
	return true, nil
}
