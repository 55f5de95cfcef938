package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/pkg/logger"
)

// StockUseCase reconstruye el stock actual de un alcance. Si la lectura falla y hay un snapshot
// previo en caché lo devuelve marcado como stale junto con el error de carga.
type StockUseCase struct {
	loader *Loader
	cache  SnapshotCache
	log    *logger.Logger
	now    func() time.Time
}

// NewStockUseCase construye el caso de uso. cache puede ser nil (sin respaldo).
func NewStockUseCase(loader *Loader, cache SnapshotCache, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{loader: loader, cache: cache, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockUseCase) WithClock(now func() time.Time) *StockUseCase {
	uc.now = now
	return uc
}

// Snapshot devuelve el stock reconstruido del alcance con estado por ítem.
func (uc *StockUseCase) Snapshot(ctx context.Context, scope domaininv.BranchScope) (*dto.StockSnapshotDTO, error) {
	catalog, records, err := uc.loader.Load(ctx, scope)
	if err != nil {
		return uc.fallback(ctx, scope, err)
	}

	snap := BuildSnapshot(catalog, records, scope, uc.now())
	if uc.cache != nil {
		if cerr := uc.cache.Set(ctx, scope.CacheKey(), snap); cerr != nil {
			uc.log.Branch(scope.String()).Warn().Err(cerr).Msg("no se pudo guardar el snapshot en caché")
		}
	}
	return snap, nil
}

func (uc *StockUseCase) fallback(ctx context.Context, scope domaininv.BranchScope, loadErr error) (*dto.StockSnapshotDTO, error) {
	if uc.cache == nil {
		return nil, loadErr
	}
	cached, ok, err := uc.cache.Get(ctx, scope.CacheKey())
	if err != nil {
		uc.log.Branch(scope.String()).Warn().Err(err).Msg("no se pudo leer el snapshot en caché")
	}
	if err != nil || !ok || cached == nil {
		return nil, loadErr
	}
	uc.log.Branch(scope.String()).Warn().Err(loadErr).
		Time("generated_at", cached.GeneratedAt).Msg("backend no disponible, se devuelve el último snapshot conocido")

	stale := *cached
	stale.Stale = true
	stale.LoadError = loadErr.Error()
	return &stale, nil
}

// Notifications alertas de stock bajo y agotado del alcance, primero las de stock agotado.
// Usa el mismo snapshot que Snapshot (incluido el respaldo en caché).
func (uc *StockUseCase) Notifications(ctx context.Context, scope domaininv.BranchScope) (*dto.NotificationListDTO, error) {
	snap, err := uc.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.NotificationDTO, 0)
	warnings := make([]dto.NotificationDTO, 0)
	for _, l := range snap.Items {
		switch domaininv.StockStatus(l.Status) {
		case domaininv.StatusOutOfStock:
			alerts = append(alerts, notification(l, "alert", fmt.Sprintf("%s is out of stock", l.ItemName)))
		case domaininv.StatusLowStock:
			warnings = append(warnings, notification(l, "warning",
				fmt.Sprintf("%s below reorder level (%d of %d)", l.ItemName, l.Quantity, l.ReorderThreshold)))
		}
	}
	list := append(alerts, warnings...)
	return &dto.NotificationListDTO{Branch: snap.Branch, Count: len(list), Notifications: list}, nil
}

func notification(l dto.StockLineDTO, severity, msg string) dto.NotificationDTO {
	return dto.NotificationDTO{
		ItemKey:          l.ItemKey,
		ItemName:         l.ItemName,
		Category:         l.Category,
		Quantity:         l.Quantity,
		ReorderThreshold: l.ReorderThreshold,
		Status:           l.Status,
		Severity:         severity,
		Message:          msg,
	}
}

// Catalog lista el catálogo. query filtra por nombre, código HSN o categoría (sin distinguir mayúsculas).
func (uc *StockUseCase) Catalog(ctx context.Context, query string) ([]dto.CatalogItemDTO, error) {
	items, err := uc.loader.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]dto.CatalogItemDTO, 0, len(items))
	for _, it := range items {
		if q != "" && !matchesCatalog(it, q) {
			continue
		}
		out = append(out, dto.FromCatalogItem(it))
	}
	return out, nil
}

func matchesCatalog(it entity.CatalogItem, q string) bool {
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.HSNCode), q) ||
		strings.Contains(strings.ToLower(it.Category), q)
}

// BuildSnapshot reconstruye y arma la respuesta de stock de un alcance.
func BuildSnapshot(catalog []entity.CatalogItem, records []entity.MovementRecord, scope domaininv.BranchScope, now time.Time) *dto.StockSnapshotDTO {
	agg := domaininv.NewAggregator(catalog, records, scope, time.UTC)
	lines := agg.Snapshot().Lines()

	items := make([]dto.StockLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.FromStockLine(l))
	}
	return &dto.StockSnapshotDTO{
		Branch:          scope.String(),
		Items:           items,
		TotalQuantity:   agg.TotalQuantity(),
		LowStockCount:   len(agg.LowStockItems()),
		OutOfStockCount: len(agg.OutOfStockItems()),
		Valuation:       dto.FromValuation(agg.StockValue()),
		GeneratedAt:     now.UTC(),
	}
}
