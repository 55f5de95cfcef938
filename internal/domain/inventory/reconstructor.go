package inventory

import (
	"sort"
	"strings"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// StockLine cantidad reconstruida de un ítem dentro de un alcance.
type StockLine struct {
	Key          ItemKey
	Item         entity.CatalogItem
	Linked       bool  // false para ítems sintetizados desde un nombre fuera del catálogo
	Quantity     int64 // cantidad efectiva, nunca negativa
	RequestedIn  int64 // suma de entradas registradas
	RequestedOut int64 // suma de salidas registradas
	DiscardedOut int64 // parte de las salidas descartada por el piso en cero
}

// Status clasificación del ítem según su cantidad y umbral de reorden.
func (l StockLine) Status() StockStatus {
	return Classify(l.Quantity, l.Item.ReorderThreshold)
}

// RequestedNet neto sin piso (entradas - salidas solicitadas).
func (l StockLine) RequestedNet() int64 { return l.RequestedIn - l.RequestedOut }

// Snapshot resultado de una reconstrucción. Las líneas siguen el orden del catálogo
// y luego los ítems sintetizados por orden de aparición.
type Snapshot struct {
	Scope BranchScope
	lines []StockLine
	byKey map[ItemKey]int
	index *CatalogIndex
}

// Lines devuelve una copia de las líneas del snapshot.
func (s *Snapshot) Lines() []StockLine {
	out := make([]StockLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line devuelve la línea de key.
func (s *Snapshot) Line(key ItemKey) (StockLine, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return StockLine{}, false
	}
	return s.lines[i], true
}

// LineByName devuelve la línea del ítem con ese nombre (normalizado).
func (s *Snapshot) LineByName(name string) (StockLine, bool) {
	key, ok := s.index.Lookup(name)
	if !ok {
		return StockLine{}, false
	}
	return s.Line(key)
}

// QuantityOf cantidad actual del ítem; 0 si el nombre no aparece.
func (s *Snapshot) QuantityOf(name string) int64 {
	l, _ := s.LineByName(name)
	return l.Quantity
}

// Quantities mapa clave → cantidad actual.
func (s *Snapshot) Quantities() map[ItemKey]int64 {
	out := make(map[ItemKey]int64, len(s.lines))
	for _, l := range s.lines {
		out[l.Key] = l.Quantity
	}
	return out
}

// Len número de ítems del snapshot.
func (s *Snapshot) Len() int { return len(s.lines) }

// SortChronologically devuelve una copia ordenada por Timestamp ascendente.
// El orden es estable: movimientos con el mismo instante conservan su orden de entrada.
func SortChronologically(records []entity.MovementRecord) []entity.MovementRecord {
	out := make([]entity.MovementRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Reconstruct calcula la cantidad actual de cada ítem a partir del log de movimientos del alcance.
// Cada ítem del catálogo arranca en 0; cada movimiento aplica su delta y el total se recorta a 0.
// Una salida mayor al stock disponible deja el ítem en 0 y el exceso queda en DiscardedOut.
// El piso en cero se aplica por sucursal: con AllBranches cada sucursal se reconstruye por separado
// y sus líneas se suman, de modo que el total coincide con la suma de las sucursales.
// Es pura: no modifica sus argumentos y la misma entrada produce el mismo snapshot.
func Reconstruct(catalog []entity.CatalogItem, records []entity.MovementRecord, scope BranchScope) *Snapshot {
	idx := NewCatalogIndex(catalog)
	totals := make(map[ItemKey]*StockLine, idx.Len())
	for _, key := range idx.Keys() {
		it, _ := idx.Item(key)
		totals[key] = &StockLine{Key: key, Item: it.Item, Linked: true}
	}
	branches := make(map[string]map[ItemKey]*StockLine)

	for _, rec := range SortChronologically(scope.Filter(records)) {
		// Registros mal formados se rechazan al ingresar; aquí solo se ignoran.
		if rec.Quantity <= 0 || rec.Quantity > entity.MaxQuantity || !rec.Direction.Valid() {
			continue
		}
		key := idx.Resolve(rec.ItemName)
		total, ok := totals[key]
		if !ok {
			it, _ := idx.Item(key)
			total = &StockLine{Key: key, Item: it.Item, Linked: it.Linked}
			totals[key] = total
		}

		branch := strings.TrimSpace(rec.BranchLocation)
		lines, ok := branches[branch]
		if !ok {
			lines = make(map[ItemKey]*StockLine)
			branches[branch] = lines
		}
		line, ok := lines[key]
		if !ok {
			line = &StockLine{Key: key}
			lines[key] = line
		}

		before := *line
		apply(line, rec)
		total.Quantity += line.Quantity - before.Quantity
		total.RequestedIn += line.RequestedIn - before.RequestedIn
		total.RequestedOut += line.RequestedOut - before.RequestedOut
		total.DiscardedOut += line.DiscardedOut - before.DiscardedOut
	}

	snap := &Snapshot{
		Scope: scope,
		lines: make([]StockLine, 0, idx.Len()),
		byKey: make(map[ItemKey]int, idx.Len()),
		index: idx,
	}
	for _, key := range idx.Keys() {
		line, ok := totals[key]
		if !ok {
			continue
		}
		snap.byKey[key] = len(snap.lines)
		snap.lines = append(snap.lines, *line)
	}
	return snap
}

func apply(line *StockLine, rec entity.MovementRecord) {
	switch rec.Direction {
	case entity.DirectionIn:
		line.RequestedIn += rec.Quantity
		line.Quantity += rec.Quantity
	case entity.DirectionOut:
		line.RequestedOut += rec.Quantity
		if rec.Quantity > line.Quantity {
			line.DiscardedOut += rec.Quantity - line.Quantity
			line.Quantity = 0
			return
		}
		line.Quantity -= rec.Quantity
	}
}
