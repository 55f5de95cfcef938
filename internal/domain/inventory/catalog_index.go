package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// ItemKey clave sustituta estable de un ítem. Los movimientos se resuelven nombre → clave una sola vez.
type ItemKey string

const (
	catalogKeyPrefix  = "catalog:"
	unlinkedKeyPrefix = "unlinked:"
)

// ResolvedItem ítem del catálogo (Linked) o sintetizado a partir de un nombre desconocido.
type ResolvedItem struct {
	Key    ItemKey
	Item   entity.CatalogItem
	Linked bool
}

// CatalogIndex resuelve nombres de ítems a claves sustitutas.
// Nombres duplicados en el catálogo colapsan a la primera definición.
type CatalogIndex struct {
	byName map[string]ItemKey
	items  map[ItemKey]*ResolvedItem
	order  []ItemKey
}

// NormalizeName forma canónica de un nombre para la comparación: NFC y sin espacios en los extremos.
// No pliega mayúsculas: "Pen" y "pen" son ítems distintos.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NewCatalogIndex construye el índice a partir del catálogo, preservando su orden.
func NewCatalogIndex(catalog []entity.CatalogItem) *CatalogIndex {
	idx := &CatalogIndex{
		byName: make(map[string]ItemKey, len(catalog)),
		items:  make(map[ItemKey]*ResolvedItem, len(catalog)),
		order:  make([]ItemKey, 0, len(catalog)),
	}
	for _, item := range catalog {
		name := NormalizeName(item.Name)
		if name == "" {
			continue
		}
		if _, dup := idx.byName[name]; dup {
			continue
		}
		key := ItemKey(item.ID)
		if _, taken := idx.items[key]; item.ID == "" || taken {
			key = ItemKey(catalogKeyPrefix + name)
		}
		idx.add(name, &ResolvedItem{Key: key, Item: item, Linked: true})
	}
	return idx
}

func (idx *CatalogIndex) add(name string, it *ResolvedItem) {
	idx.byName[name] = it.Key
	idx.items[it.Key] = it
	idx.order = append(idx.order, it.Key)
}

// Lookup busca un nombre sin sintetizar.
func (idx *CatalogIndex) Lookup(name string) (ItemKey, bool) {
	key, ok := idx.byName[NormalizeName(name)]
	return key, ok
}

// Resolve devuelve la clave del nombre; si no existe sintetiza un ítem "unlinked"
// (categoría Uncategorized, umbral 0) y lo agrega al índice.
func (idx *CatalogIndex) Resolve(name string) ItemKey {
	normalized := NormalizeName(name)
	if key, ok := idx.byName[normalized]; ok {
		return key
	}
	key := ItemKey(unlinkedKeyPrefix + normalized)
	idx.add(normalized, &ResolvedItem{
		Key: key,
		Item: entity.CatalogItem{
			Name:           normalized,
			Category:       entity.UncategorizedCategory,
			UnitRate:       decimal.Zero,
			TaxRatePercent: decimal.Zero,
		},
		Linked: false,
	})
	return key
}

// Item devuelve el ítem asociado a key.
func (idx *CatalogIndex) Item(key ItemKey) (ResolvedItem, bool) {
	it, ok := idx.items[key]
	if !ok {
		return ResolvedItem{}, false
	}
	return *it, true
}

// Keys devuelve las claves en orden: catálogo primero, luego ítems sintetizados por orden de aparición.
func (idx *CatalogIndex) Keys() []ItemKey {
	out := make([]ItemKey, len(idx.order))
	copy(out, idx.order)
	return out
}

// Len número de ítems indexados.
func (idx *CatalogIndex) Len() int { return len(idx.order) }
