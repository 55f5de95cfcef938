package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// MovementSummary totales de un conjunto de movimientos sobre cantidades solicitadas.
type MovementSummary struct {
	Entries    int
	InEntries  int
	OutEntries int
	InQty      int64
	OutQty     int64
	Net        int64 // InQty - OutQty, puede ser negativo
}

// BranchSummary desglose de actividad de una sucursal.
type BranchSummary struct {
	Branch        string
	EntryCount    int
	InQty         int64
	OutQty        int64
	EmployeeCount int // integrantes del roster asignados a la sucursal
	ActiveActors  int // autores distintos con movimientos en la sucursal
}

// DailyTotal totales de un día calendario local.
type DailyTotal struct {
	Date   string // YYYY-MM-DD
	InQty  int64
	OutQty int64
}

// MonthlyTotal totales de un mes calendario local.
type MonthlyTotal struct {
	Month  string // YYYY-MM
	InQty  int64
	OutQty int64
}

// Aggregator responde las consultas de reportes sobre un catálogo y un log ya acotados a un alcance.
// Los rangos de fecha se interpretan en el calendario de loc.
type Aggregator struct {
	catalog  []entity.CatalogItem
	records  []entity.MovementRecord // del alcance, en orden cronológico
	scope    BranchScope
	loc      *time.Location
	snapshot *Snapshot
}

// NewAggregator construye el agregador y reconstruye el snapshot del alcance una sola vez.
// Con loc nil se usa UTC.
func NewAggregator(catalog []entity.CatalogItem, records []entity.MovementRecord, scope BranchScope, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	scoped := SortChronologically(scope.Filter(records))
	cat := make([]entity.CatalogItem, len(catalog))
	copy(cat, catalog)
	return &Aggregator{
		catalog:  cat,
		records:  scoped,
		scope:    scope,
		loc:      loc,
		snapshot: Reconstruct(cat, scoped, scope),
	}
}

// Scope alcance del agregador.
func (a *Aggregator) Scope() BranchScope { return a.scope }

// Location calendario del agregador.
func (a *Aggregator) Location() *time.Location { return a.loc }

// Snapshot cantidades reconstruidas del alcance.
func (a *Aggregator) Snapshot() *Snapshot { return a.snapshot }

// Records copia de los movimientos del alcance en orden cronológico.
func (a *Aggregator) Records() []entity.MovementRecord {
	out := make([]entity.MovementRecord, len(a.records))
	copy(out, a.records)
	return out
}

// TotalQuantity suma de las cantidades actuales (stock de cierre).
func (a *Aggregator) TotalQuantity() int64 {
	var total int64
	for _, l := range a.snapshot.lines {
		total += l.Quantity
	}
	return total
}

// LowStockItems ítems con 0 < q <= umbral de reorden.
func (a *Aggregator) LowStockItems() []StockLine {
	return a.linesWithStatus(StatusLowStock)
}

// OutOfStockItems ítems con cantidad 0.
func (a *Aggregator) OutOfStockItems() []StockLine {
	return a.linesWithStatus(StatusOutOfStock)
}

// AlertCount ítems con stock bajo o agotado.
func (a *Aggregator) AlertCount() int {
	return len(a.LowStockItems()) + len(a.OutOfStockItems())
}

func (a *Aggregator) linesWithStatus(status StockStatus) []StockLine {
	out := make([]StockLine, 0)
	for _, l := range a.snapshot.lines {
		if l.Status() == status {
			out = append(out, l)
		}
	}
	return out
}

// MovementsInRange movimientos con start <= timestamp <= end, en orden cronológico.
func (a *Aggregator) MovementsInRange(start, end time.Time) []entity.MovementRecord {
	return a.movementsIn(Period{Start: start, End: end})
}

// MovementsOnDay movimientos cuya fecha calendario local coincide con la de day.
func (a *Aggregator) MovementsOnDay(day time.Time) []entity.MovementRecord {
	out := make([]entity.MovementRecord, 0)
	for _, r := range a.records {
		if SameLocalDate(r.Timestamp, day, a.loc) {
			out = append(out, r)
		}
	}
	return out
}

// MovementsInMonth movimientos del mes calendario local de day.
func (a *Aggregator) MovementsInMonth(day time.Time) []entity.MovementRecord {
	return a.movementsIn(MonthOf(day, a.loc))
}

// MovementsInPeriod movimientos dentro de p.
func (a *Aggregator) MovementsInPeriod(p Period) []entity.MovementRecord {
	return a.movementsIn(p)
}

func (a *Aggregator) movementsIn(p Period) []entity.MovementRecord {
	out := make([]entity.MovementRecord, 0)
	for _, r := range a.records {
		if p.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

// RecentMovements los n movimientos más recientes, del más nuevo al más antiguo.
func (a *Aggregator) RecentMovements(n int) []entity.MovementRecord {
	if n <= 0 {
		return []entity.MovementRecord{}
	}
	if n > len(a.records) {
		n = len(a.records)
	}
	out := make([]entity.MovementRecord, 0, n)
	for i := len(a.records) - 1; len(out) < n; i-- {
		out = append(out, a.records[i])
	}
	return out
}

// PerBranchReconstruction snapshot de una sola sucursal. Fuera del alcance del agregador
// el resultado no tiene movimientos.
func (a *Aggregator) PerBranchReconstruction(branch string) *Snapshot {
	return Reconstruct(a.catalog, a.records, ForBranch(branch))
}

// StockValue valorización del snapshot a precio de catálogo.
func (a *Aggregator) StockValue() Valuation {
	return Value(a.snapshot.lines)
}

// BranchBreakdown desglose por sucursal, ordenado por nombre. Incluye las sucursales del roster
// sin movimientos. Las sucursales fuera del alcance no aparecen.
func (a *Aggregator) BranchBreakdown(roster []entity.Employee) []BranchSummary {
	byBranch := make(map[string]*BranchSummary)
	actors := make(map[string]map[string]struct{})
	get := func(branch string) *BranchSummary {
		b, ok := byBranch[branch]
		if !ok {
			b = &BranchSummary{Branch: branch}
			byBranch[branch] = b
			actors[branch] = make(map[string]struct{})
		}
		return b
	}

	for _, r := range a.records {
		branch := strings.TrimSpace(r.BranchLocation)
		b := get(branch)
		b.EntryCount++
		switch r.Direction {
		case entity.DirectionIn:
			b.InQty += r.Quantity
		case entity.DirectionOut:
			b.OutQty += r.Quantity
		}
		if actor := strings.TrimSpace(r.ActorName); actor != "" {
			actors[branch][actor] = struct{}{}
		}
	}
	for _, e := range roster {
		if !a.scope.Includes(e.BranchLocation) {
			continue
		}
		get(strings.TrimSpace(e.BranchLocation)).EmployeeCount++
	}

	out := make([]BranchSummary, 0, len(byBranch))
	for branch, b := range byBranch {
		b.ActiveActors = len(actors[branch])
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Branch < out[j].Branch })
	return out
}

// NetMovement entradas menos salidas solicitadas. No aplica el piso en cero, por lo que
// puede diferir (incluso ser negativo) respecto del stock reconstruido.
func NetMovement(records []entity.MovementRecord) int64 {
	var net int64
	for _, r := range records {
		net += r.SignedDelta()
	}
	return net
}

// Summarize cuenta entradas y cantidades de records.
func Summarize(records []entity.MovementRecord) MovementSummary {
	var s MovementSummary
	for _, r := range records {
		s.Entries++
		switch r.Direction {
		case entity.DirectionIn:
			s.InEntries++
			s.InQty += r.Quantity
		case entity.DirectionOut:
			s.OutEntries++
			s.OutQty += r.Quantity
		}
	}
	s.Net = s.InQty - s.OutQty
	return s
}

// DailyRollup totales por día calendario local, en orden ascendente.
func DailyRollup(records []entity.MovementRecord, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.UTC
	}
	totals := make(map[string]*DailyTotal)
	for _, r := range records {
		key := r.Timestamp.In(loc).Format(DateLayout)
		t, ok := totals[key]
		if !ok {
			t = &DailyTotal{Date: key}
			totals[key] = t
		}
		addDirection(&t.InQty, &t.OutQty, r)
	}
	out := make([]DailyTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthlyRollup totales por mes calendario local, en orden ascendente.
func MonthlyRollup(records []entity.MovementRecord, loc *time.Location) []MonthlyTotal {
	if loc == nil {
		loc = time.UTC
	}
	totals := make(map[string]*MonthlyTotal)
	for _, r := range records {
		key := r.Timestamp.In(loc).Format("2006-01")
		t, ok := totals[key]
		if !ok {
			t = &MonthlyTotal{Month: key}
			totals[key] = t
		}
		addDirection(&t.InQty, &t.OutQty, r)
	}
	out := make([]MonthlyTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func addDirection(in, out *int64, r entity.MovementRecord) {
	switch r.Direction {
	case entity.DirectionIn:
		*in += r.Quantity
	case entity.DirectionOut:
		*out += r.Quantity
	}
}
