package entity

import "github.com/shopspring/decimal"

// UncategorizedCategory es la categoría de los ítems sintetizados a partir de un nombre
// que no existe en el catálogo.
const UncategorizedCategory = "Uncategorized"

// CatalogItem representa un artículo del catálogo fijo de papelería (solo lectura en runtime).
// Los movimientos lo referencian por Name, no por ID.
type CatalogItem struct {
	ID               string
	Name             string // clave de visualización única
	HSNCode          string
	Category         string
	Unit             string
	ReorderThreshold int64
	UnitRate         decimal.Decimal // precio unitario
	TaxRatePercent   decimal.Decimal // GST en porcentaje: 0, 5, 12, 18, 28
}
