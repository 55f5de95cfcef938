package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo lectura del directorio de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

type supplierRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Contact string `db:"contact"`
	Phone   string `db:"phone"`
	Items   string `db:"items"`
	Active  bool   `db:"active"`
}

// ListSuppliers devuelve todos los proveedores ordenados por nombre.
func (r *SupplierRepo) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	query, args, err := builder.Select("id", "name", "contact", "phone", "items", "active").
		From(suppliersTable).OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, err
	}
	var rows []supplierRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("list suppliers", err)
	}
	out := make([]entity.Supplier, len(rows))
	for i, row := range rows {
		out[i] = entity.Supplier(row)
	}
	return out, nil
}
