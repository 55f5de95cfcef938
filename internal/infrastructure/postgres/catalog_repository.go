package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

type catalogRow struct {
	ID               string          `db:"id"`
	Name             string          `db:"name"`
	HSNCode          string          `db:"hsn_code"`
	Category         string          `db:"category"`
	Unit             string          `db:"unit"`
	ReorderThreshold int64           `db:"reorder_threshold"`
	UnitRate         decimal.Decimal `db:"unit_rate"`
	TaxRatePercent   decimal.Decimal `db:"tax_rate_percent"`
}

// FetchCatalog devuelve el catálogo en el orden de definición (position).
func (r *CatalogRepo) FetchCatalog(ctx context.Context) ([]entity.CatalogItem, error) {
	query, args, err := builder.
		Select("id", "name", "hsn_code", "category", "unit", "reorder_threshold", "unit_rate", "tax_rate_percent").
		From(catalogTable).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []catalogRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, wrapErr("fetch catalog", err)
	}
	out := make([]entity.CatalogItem, len(rows))
	for i, row := range rows {
		out[i] = entity.CatalogItem(row)
	}
	return out, nil
}
