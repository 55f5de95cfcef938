package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo satisfacen *pgxpool.Pool y pgx.Tx; los repositorios no distinguen entre ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Nombres de tabla compartidos con el adaptador REST.
const (
	catalogTable   = "catalog_items"
	movementsTable = "stock_entries"
	editLogTable   = "edit_logs"
	deleteLogTable = "deletion_logs"
	employeesTable = "employees"
	branchesTable  = "branches"
	suppliersTable = "suppliers"
)
