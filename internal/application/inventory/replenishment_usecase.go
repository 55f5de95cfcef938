package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-register/internal/application/dto"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
)

const outflowWindowDays = 30 // ventana de salidas recientes para priorizar

var (
	idealStockFactor = decimal.NewFromFloat(1.5)
	hundred          = decimal.NewFromInt(100)
)

// ReplenishmentUseCase genera la lista de reposición de un alcance.
// Combina el stock reconstruido con las salidas recientes para priorizar los ítems críticos.
type ReplenishmentUseCase struct {
	loader *Loader
	now    func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(loader *Loader) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{loader: loader, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// GenerateReplenishmentList devuelve los ítems en o bajo su umbral de reorden con la cantidad
// sugerida de pedido, el costo estimado a precio de catálogo y un ranking de prioridad.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	scope domaininv.BranchScope,
) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Stock actual del alcance
	catalog, records, err := uc.loader.Load(ctx, scope)
	if err != nil {
		return nil, err
	}
	agg := domaininv.NewAggregator(catalog, records, scope, time.UTC)

	// 2. Salidas de los últimos 30 días por ítem
	end := uc.now()
	start := end.AddDate(0, 0, -outflowWindowDays)
	recent := domaininv.Reconstruct(catalog, agg.MovementsInRange(start, end), scope)

	// 3. Construir las sugerencias
	candidates := append(agg.OutOfStockItems(), agg.LowStockItems()...)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(candidates))
	for _, line := range candidates {
		reorder := decimal.NewFromInt(line.Item.ReorderThreshold)
		idealStock := reorder.Mul(idealStockFactor).Ceil().IntPart()
		suggestedQty := idealStock - line.Quantity
		if suggestedQty <= 0 {
			continue
		}

		cost := line.Item.UnitRate.Mul(decimal.NewFromInt(suggestedQty)).Round(2)
		tax := cost.Mul(line.Item.TaxRatePercent).Div(hundred).Round(2)

		var outflow int64
		if r, ok := recent.Line(line.Key); ok {
			outflow = r.RequestedOut
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemKey:           string(line.Key),
			ItemName:          line.Item.Name,
			Category:          line.Item.Category,
			CurrentStock:      line.Quantity,
			ReorderThreshold:  line.Item.ReorderThreshold,
			IdealStock:        idealStock,
			SuggestedOrderQty: suggestedQty,
			UnitRate:          line.Item.UnitRate,
			EstimatedCost:     cost,
			EstimatedTax:      tax,
			OutflowLast30Days: outflow,
		})
	}

	// 4. Ordenar: primero los agotados, luego mayor salida reciente,
	//    finalmente mayor déficit relativo al umbral.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		if a.OutflowLast30Days != b.OutflowLast30Days {
			return a.OutflowLast30Days > b.OutflowLast30Days
		}
		return deficitRatio(a).GreaterThan(deficitRatio(b))
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}

func deficitRatio(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.ReorderThreshold <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.ReorderThreshold - s.CurrentStock).Div(decimal.NewFromInt(s.ReorderThreshold))
}
