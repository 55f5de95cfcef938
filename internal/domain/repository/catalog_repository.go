package repository

import (
	"context"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// CatalogRepository puerto de lectura del catálogo fijo de artículos.
type CatalogRepository interface {
	FetchCatalog(ctx context.Context) ([]entity.CatalogItem, error)
}
