package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/domain/repository"
)

// Loader lee catálogo y movimientos de un alcance en paralelo. Si falla cualquiera de las
// lecturas falla la operación completa (no hay resultados parciales).
type Loader struct {
	catalog   repository.CatalogRepository
	movements repository.MovementRepository
}

// NewLoader construye el lector.
func NewLoader(catalog repository.CatalogRepository, movements repository.MovementRepository) *Loader {
	return &Loader{catalog: catalog, movements: movements}
}

// Load devuelve el catálogo y los movimientos del alcance.
func (l *Loader) Load(ctx context.Context, scope domaininv.BranchScope) ([]entity.CatalogItem, []entity.MovementRecord, error) {
	type catalogResult struct {
		items []entity.CatalogItem
		err   error
	}
	type movementsResult struct {
		records []entity.MovementRecord
		err     error
	}

	catalogCh := make(chan catalogResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		items, err := l.catalog.FetchCatalog(ctx)
		catalogCh <- catalogResult{items, err}
	}()
	go func() {
		records, err := l.movements.FetchMovements(ctx, scope.Location())
		movementsCh <- movementsResult{records, err}
	}()

	cat := <-catalogCh
	mov := <-movementsCh

	if cat.err != nil {
		return nil, nil, fmt.Errorf("leer catálogo: %w", cat.err)
	}
	if mov.err != nil {
		return nil, nil, fmt.Errorf("leer movimientos: %w", mov.err)
	}
	return cat.items, mov.records, nil
}

// Catalog lee solo el catálogo.
func (l *Loader) Catalog(ctx context.Context) ([]entity.CatalogItem, error) {
	items, err := l.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return items, nil
}
