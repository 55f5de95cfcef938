package dto

import (
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/inventory"
)

// FromMovement mapea un movimiento a su DTO.
func FromMovement(m entity.MovementRecord) MovementDTO {
	return MovementDTO{
		ID:        m.ID,
		ItemName:  m.ItemName,
		Branch:    m.BranchLocation,
		Direction: string(m.Direction),
		Quantity:  m.Quantity,
		Timestamp: m.Timestamp,
		ActorName: m.ActorName,
		IsEdited:  m.IsEdited,
		EditedAt:  m.EditedAt,
	}
}

// FromMovements mapea una lista de movimientos; nunca devuelve nil.
func FromMovements(list []entity.MovementRecord) []MovementDTO {
	out := make([]MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromCatalogItem mapea un artículo del catálogo.
func FromCatalogItem(c entity.CatalogItem) CatalogItemDTO {
	return CatalogItemDTO{
		ID:               c.ID,
		Name:             c.Name,
		HSNCode:          c.HSNCode,
		Category:         c.Category,
		Unit:             c.Unit,
		ReorderThreshold: c.ReorderThreshold,
		UnitRate:         c.UnitRate,
		TaxRatePercent:   c.TaxRatePercent,
	}
}

// FromStockLine mapea una línea reconstruida con su estado.
func FromStockLine(l inventory.StockLine) StockLineDTO {
	return StockLineDTO{
		ItemKey:          string(l.Key),
		ItemName:         l.Item.Name,
		HSNCode:          l.Item.HSNCode,
		Category:         l.Item.Category,
		Unit:             l.Item.Unit,
		ReorderThreshold: l.Item.ReorderThreshold,
		Quantity:         l.Quantity,
		Status:           string(l.Status()),
		Linked:           l.Linked,
		RequestedIn:      l.RequestedIn,
		RequestedOut:     l.RequestedOut,
		DiscardedOut:     l.DiscardedOut,
		UnitRate:         l.Item.UnitRate,
		TaxRatePercent:   l.Item.TaxRatePercent,
	}
}

// FromSummary mapea los totales de movimientos.
func FromSummary(s inventory.MovementSummary) MovementSummaryDTO {
	return MovementSummaryDTO{
		Entries:    s.Entries,
		InEntries:  s.InEntries,
		OutEntries: s.OutEntries,
		InQty:      s.InQty,
		OutQty:     s.OutQty,
		Net:        s.Net,
	}
}

// FromValuation mapea la valorización del stock.
func FromValuation(v inventory.Valuation) ValuationDTO {
	return ValuationDTO{Units: v.Units, Net: v.Net, Tax: v.Tax, Gross: v.Gross}
}

// FromEditLogEntry mapea una entrada del log de ediciones.
func FromEditLogEntry(e entity.EditLogEntry) EditLogEntryDTO {
	return EditLogEntryDTO{
		ID:               e.ID,
		MovementRecordID: e.MovementRecordID,
		ItemName:         e.ItemName,
		OldDirection:     string(e.OldDirection),
		NewDirection:     string(e.NewDirection),
		OldQuantity:      e.OldQuantity,
		NewQuantity:      e.NewQuantity,
		EditedBy:         e.EditedBy,
		Branch:           e.Branch,
		EditedAt:         e.EditedAt,
	}
}

// FromDeletionLogEntry mapea una entrada del log de eliminaciones.
func FromDeletionLogEntry(e entity.DeletionLogEntry) DeletionLogEntryDTO {
	return DeletionLogEntryDTO{
		ID:                       e.ID,
		OriginalMovementRecordID: e.OriginalMovementRecordID,
		ItemName:                 e.ItemName,
		Direction:                string(e.Direction),
		Quantity:                 e.Quantity,
		OriginalTimestamp:        e.OriginalTimestamp,
		Branch:                   e.Branch,
		ActorName:                e.ActorName,
		DeletedBy:                e.DeletedBy,
		DeletedAt:                e.DeletedAt,
	}
}

// FromEmployee mapea un integrante del roster.
func FromEmployee(e entity.Employee) EmployeeDTO {
	return EmployeeDTO{ID: e.ID, Name: e.Name, Role: e.Role, Initials: e.Initials, Branch: e.BranchLocation}
}

// FromSupplier mapea entity.Supplier a SupplierDTO.
func FromSupplier(s entity.Supplier) SupplierDTO {
	status := "inactive"
	if s.Active {
		status = "active"
	}
	return SupplierDTO{ID: s.ID, Name: s.Name, Contact: s.Contact, Phone: s.Phone, Items: s.Items, Status: status}
}

// ScopeLabel etiqueta de alcance para respuestas.
func ScopeLabel(scope inventory.BranchScope) string {
	return scope.String()
}
