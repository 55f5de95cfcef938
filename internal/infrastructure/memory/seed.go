package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-register/internal/domain/entity"
)

// Datos de la sucursal por defecto.
const (
	DefaultBranch  = "Central Warehouse - Bangalore"
	DefaultBOECode = "BOE-KA-2024-0142"
	openingActor   = "Opening Balance"
)

type seedItem struct {
	id, name, hsn, category, unit string
	opening, reorder              int64
	rate, tax                     string
}

var defaultItems = []seedItem{
	{"WRT-BP-001", "Ball Pen (Blue)", "9608", "Writing", "Pcs", 2500, 500, "10.00", "18"},
	{"WRT-GP-002", "Gel Pen (Black)", "9608", "Writing", "Pcs", 1800, 400, "15.00", "18"},
	{"PAP-A4-001", "A4 Copier Paper (500 sheets)", "4802", "Paper", "Ream", 320, 100, "285.00", "12"},
	{"PAP-LG-002", "Legal Size Paper", "4802", "Paper", "Ream", 150, 50, "310.00", "12"},
	{"FIL-BX-001", "Box File", "4820", "Filing", "Pcs", 85, 30, "95.00", "18"},
	{"FIL-LF-002", "L-Folder (Transparent)", "3926", "Filing", "Pcs", 600, 200, "6.50", "18"},
	{"DSK-ST-001", "Stapler (Heavy Duty)", "8472", "Desk Supplies", "Pcs", 45, 15, "420.00", "18"},
	{"DSK-SP-002", "Stapler Pins (No.10)", "8305", "Desk Supplies", "Box", 3200, 500, "12.00", "18"},
	{"WRT-WM-003", "Whiteboard Marker", "9608", "Writing", "Pcs", 12, 50, "35.00", "18"},
	{"PRT-TN-001", "Printer Toner (Black)", "3707", "Printing", "Pcs", 8, 10, "2450.00", "18"},
	{"DSK-SN-003", "Sticky Notes (3x3)", "4820", "Desk Supplies", "Pad", 15, 40, "45.00", "12"},
	{"TEC-USB-001", "USB Flash Drive 32GB", "8523", "Tech Accessories", "Pcs", 5, 10, "380.00", "18"},
	{"DSK-SC-004", "Scissors (Office)", "8213", "Desk Supplies", "Pcs", 22, 10, "85.00", "18"},
	{"PAP-ENV-003", "Envelope (A4 Brown)", "4817", "Paper", "Pcs", 900, 200, "4.00", "12"},
	{"WRT-CP-004", "Correction Pen", "9608", "Writing", "Pcs", 3, 20, "30.00", "18"},
}

var defaultTeam = []entity.Employee{
	{ID: "emp-1", Name: "Alex Johnson", Role: "Inventory Manager", Initials: "AJ"},
	{ID: "emp-2", Name: "Priya Sharma", Role: "Stock Controller", Initials: "PS"},
	{ID: "emp-3", Name: "Ravi Kumar", Role: "Procurement Lead", Initials: "RK"},
	{ID: "emp-4", Name: "Sneha Reddy", Role: "Data Analyst", Initials: "SR"},
	{ID: "emp-5", Name: "Mohammed Irfan", Role: "Warehouse Staff", Initials: "MI"},
	{ID: "emp-6", Name: "Divya Nair", Role: "Accounts Officer", Initials: "DN"},
}

var defaultSuppliers = []entity.Supplier{
	{ID: "sup-1", Name: "Classmate Stationery", Contact: "Vikram Patel", Phone: "+91 98765 43210", Items: "Writing, Paper", Active: true},
	{ID: "sup-2", Name: "Hindustan Office Supplies", Contact: "Anita Desai", Phone: "+91 87654 32109", Items: "Filing, Desk Supplies", Active: true},
	{ID: "sup-3", Name: "TechMart Peripherals", Contact: "Suresh Menon", Phone: "+91 76543 21098", Items: "Tech Accessories, Printing", Active: true},
	{ID: "sup-4", Name: "Paper World India", Contact: "Farhan Qureshi", Phone: "+91 65432 10987", Items: "Paper, Printing", Active: false},
}

type seedMovement struct {
	item      string
	direction entity.Direction
	qty       int64
	at        string // hora local de la sucursal
	actor     string
}

// "A4 Copier Paper" no coincide con el catálogo y se reconstruye como ítem sin vincular.
var defaultMovements = []seedMovement{
	{"Ball Pen (Blue)", entity.DirectionIn, 500, "2026-02-17T10:30:00", "P. Sharma"},
	{"A4 Copier Paper", entity.DirectionOut, 80, "2026-02-17T09:15:00", "R. Kumar"},
	{"Printer Toner (Black)", entity.DirectionOut, 2, "2026-02-16T16:45:00", "M. Irfan"},
	{"Gel Pen (Black)", entity.DirectionIn, 200, "2026-02-16T14:00:00", "P. Sharma"},
	{"L-Folder (Transparent)", entity.DirectionIn, 300, "2026-02-16T11:30:00", "A. Johnson"},
	{"Stapler Pins (No.10)", entity.DirectionOut, 500, "2026-02-15T15:20:00", "D. Nair"},
	{"USB Flash Drive 32GB", entity.DirectionOut, 3, "2026-02-15T12:00:00", "S. Reddy"},
	{"Whiteboard Marker", entity.DirectionIn, 50, "2026-02-15T10:00:00", "R. Kumar"},
}

// DefaultCatalog catálogo de papelería por defecto.
func DefaultCatalog() []entity.CatalogItem {
	out := make([]entity.CatalogItem, 0, len(defaultItems))
	for _, it := range defaultItems {
		out = append(out, entity.CatalogItem{
			ID:               it.id,
			Name:             it.name,
			HSNCode:          it.hsn,
			Category:         it.category,
			Unit:             it.unit,
			ReorderThreshold: it.reorder,
			UnitRate:         decimal.RequireFromString(it.rate),
			TaxRatePercent:   decimal.RequireFromString(it.tax),
		})
	}
	return out
}

// DefaultRoster personal por defecto asignado a la sucursal por defecto.
func DefaultRoster() []entity.Employee {
	out := make([]entity.Employee, 0, len(defaultTeam))
	for _, e := range defaultTeam {
		e.BranchLocation = DefaultBranch
		out = append(out, e)
	}
	return out
}

// DefaultSuppliers directorio de proveedores por defecto.
func DefaultSuppliers() []entity.Supplier {
	return append([]entity.Supplier(nil), defaultSuppliers...)
}

// SeedDefaults carga en s el catálogo, el roster, los proveedores y la sucursal por defecto, los saldos de apertura
// (un ingreso por ítem el 2026-02-01) y los movimientos de ejemplo. Las horas se interpretan en loc.
func SeedDefaults(s *Store, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	s.SetCatalog(DefaultCatalog())
	s.AddBranches(entity.Branch{ID: "br-1", Location: DefaultBranch, BOECode: DefaultBOECode})
	s.AddEmployees(DefaultRoster()...)
	s.AddSuppliers(DefaultSuppliers()...)

	s.mu.Lock()
	defer s.mu.Unlock()
	opening := time.Date(2026, 2, 1, 9, 0, 0, 0, loc).UTC()
	for _, it := range defaultItems {
		s.movements = append(s.movements, entity.MovementRecord{
			ID:             "open-" + it.id,
			ItemName:       it.name,
			BranchLocation: DefaultBranch,
			Direction:      entity.DirectionIn,
			Quantity:       it.opening,
			Timestamp:      opening,
			ActorName:      openingActor,
		})
	}
	for i, m := range defaultMovements {
		ts, err := time.ParseInLocation("2006-01-02T15:04:05", m.at, loc)
		if err != nil {
			continue
		}
		s.movements = append(s.movements, entity.MovementRecord{
			ID:             fmt.Sprintf("txn-%d", i+1),
			ItemName:       m.item,
			BranchLocation: DefaultBranch,
			Direction:      m.direction,
			Quantity:       m.qty,
			Timestamp:      ts.UTC(),
			ActorName:      m.actor,
		})
	}
}
