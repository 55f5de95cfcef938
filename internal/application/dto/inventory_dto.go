package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
// EntryDate (YYYY-MM-DD) es la fecha elegida por el usuario; la hora se toma del reloj al registrar.
// Branch solo lo usa la oficina central; el personal de sucursal registra en su propia sucursal.
type RegisterMovementRequest struct {
	ItemName  string `json:"item_name" validate:"notblank,max=200"`
	Direction string `json:"direction" validate:"required,direction"`
	Quantity  int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
	EntryDate string `json:"entry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Branch    string `json:"branch,omitempty" validate:"omitempty,max=200"`
}

// EditMovementRequest body para PUT /api/movements/:id.
type EditMovementRequest struct {
	Direction string `json:"direction" validate:"required,direction"`
	Quantity  int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// MovementDTO movimiento de stock en respuestas.
type MovementDTO struct {
	ID        string     `json:"id"`
	ItemName  string     `json:"item_name"`
	Branch    string     `json:"branch"`
	Direction string     `json:"direction"`
	Quantity  int64      `json:"quantity"`
	Timestamp time.Time  `json:"timestamp"`
	ActorName string     `json:"actor_name"`
	IsEdited  bool       `json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// MovementListDTO respuesta de GET /api/movements.
type MovementListDTO struct {
	Branch    string             `json:"branch"`
	Start     time.Time          `json:"start"`
	End       time.Time          `json:"end"`
	Summary   MovementSummaryDTO `json:"summary"`
	Movements []MovementDTO      `json:"movements"`
}

// EditMovementResponse resultado de una edición auditada. Warning indica que la entrada de auditoría no se guardó.
type EditMovementResponse struct {
	Movement MovementDTO     `json:"movement"`
	Audit    EditLogEntryDTO `json:"audit"`
	Warning  string          `json:"warning,omitempty"`
}

// DeleteMovementResponse resultado de una eliminación. Warning indica que el registro de auditoría no se guardó.
type DeleteMovementResponse struct {
	Deleted MovementDTO `json:"deleted"`
	Warning string      `json:"warning,omitempty"`
}

// CatalogItemDTO artículo del catálogo.
type CatalogItemDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	HSNCode          string          `json:"hsn_code"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	UnitRate         decimal.Decimal `json:"unit_rate"`
	TaxRatePercent   decimal.Decimal `json:"tax_rate_percent"`
}

// StockLineDTO cantidad reconstruida de un ítem.
type StockLineDTO struct {
	ItemKey          string          `json:"item_key"`
	ItemName         string          `json:"item_name"`
	HSNCode          string          `json:"hsn_code,omitempty"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit,omitempty"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	Quantity         int64           `json:"quantity"`
	Status           string          `json:"status"`
	Linked           bool            `json:"linked"`        // false: nombre fuera del catálogo
	RequestedIn      int64           `json:"requested_in"`  // suma de entradas registradas
	RequestedOut     int64           `json:"requested_out"` // suma de salidas registradas
	DiscardedOut     int64           `json:"discarded_out"` // salidas descartadas por el piso en cero
	UnitRate         decimal.Decimal `json:"unit_rate"`
	TaxRatePercent   decimal.Decimal `json:"tax_rate_percent"`
}

// ValuationDTO valor del stock a precio de catálogo.
type ValuationDTO struct {
	Units int64           `json:"units"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Gross decimal.Decimal `json:"gross"`
}

// StockSnapshotDTO respuesta de GET /api/stock.
// Stale indica que la lectura falló y se devuelve el último snapshot conocido; LoadError trae el motivo.
type StockSnapshotDTO struct {
	Branch          string         `json:"branch"`
	Items           []StockLineDTO `json:"items"`
	TotalQuantity   int64          `json:"total_quantity"`
	LowStockCount   int            `json:"low_stock_count"`
	OutOfStockCount int            `json:"out_of_stock_count"`
	Valuation       ValuationDTO   `json:"valuation"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Stale           bool           `json:"stale"`
	LoadError       string         `json:"load_error,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un ítem en o bajo su umbral de reorden.
type ReplenishmentSuggestionDTO struct {
	ItemKey           string          `json:"item_key"`
	ItemName          string          `json:"item_name"`
	Category          string          `json:"category"`
	CurrentStock      int64           `json:"current_stock"`
	ReorderThreshold  int64           `json:"reorder_threshold"`
	IdealStock        int64           `json:"ideal_stock"`          // umbral * 1.5, redondeado hacia arriba
	SuggestedOrderQty int64           `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitRate          decimal.Decimal `json:"unit_rate"`            // precio de catálogo
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`       // SuggestedOrderQty * UnitRate
	EstimatedTax      decimal.Decimal `json:"estimated_tax"`        // GST sobre EstimatedCost
	OutflowLast30Days int64           `json:"outflow_last_30_days"` // salidas registradas recientes
	Priority          int             `json:"priority"`             // 1 = más urgente
}

// NotificationDTO alerta de stock bajo o agotado.
type NotificationDTO struct {
	ItemKey          string `json:"item_key"`
	ItemName         string `json:"item_name"`
	Category         string `json:"category"`
	Quantity         int64  `json:"quantity"`
	ReorderThreshold int64  `json:"reorder_threshold"`
	Status           string `json:"status"`
	Severity         string `json:"severity"` // "alert" | "warning"
	Message          string `json:"message"`
}

// NotificationListDTO respuesta de GET /api/notifications.
type NotificationListDTO struct {
	Branch        string            `json:"branch"`
	Count         int               `json:"count"`
	Notifications []NotificationDTO `json:"notifications"`
}

// StockEventDTO evento publicado por websocket cuando cambia el log de movimientos.
type StockEventDTO struct {
	Type     string      `json:"type"` // "movement.created" | "movement.edited" | "movement.deleted"
	Branch   string      `json:"branch"`
	Movement MovementDTO `json:"movement"`
	At       time.Time   `json:"at"`
}
