package dto

import "time"

// MovementSummaryDTO totales de un conjunto de movimientos (cantidades solicitadas).
type MovementSummaryDTO struct {
	Entries    int   `json:"total_transactions"`
	InEntries  int   `json:"stock_in_entries"`
	OutEntries int   `json:"stock_out_entries"`
	InQty      int64 `json:"stock_in_qty"`
	OutQty     int64 `json:"stock_out_qty"`
	Net        int64 `json:"net_movement"`
}

// PeriodReportDTO bloque de reporte de un periodo (hoy o mes a la fecha).
type PeriodReportDTO struct {
	Label         string             `json:"label"`
	Start         time.Time          `json:"start"`
	End           time.Time          `json:"end"`
	Summary       MovementSummaryDTO `json:"summary"`
	ClosingStock  int64              `json:"closing_stock,omitempty"`
	LowStockItems int                `json:"low_stock_items,omitempty"`
	Activity      []MovementDTO      `json:"activity"`
}

// ReportSummaryDTO respuesta de GET /api/reports/summary.
type ReportSummaryDTO struct {
	Branch          string          `json:"branch"`
	BOECode         string          `json:"boe_code,omitempty"`
	Today           PeriodReportDTO `json:"today"`
	MonthToDate     PeriodReportDTO `json:"month_to_date"`
	ClosingStock    int64           `json:"closing_stock"`
	LowStockCount   int             `json:"low_stock_count"` // stock bajo o agotado
	StockIn         int64           `json:"stock_in"`        // entradas del mes
	StockOut        int64           `json:"stock_out"`       // salidas del mes
	Valuation       ValuationDTO    `json:"valuation"`
	RecentMovements []MovementDTO   `json:"recent_movements"`
	DateLabel       string          `json:"date_label"`
}

// DailyTotalDTO totales de un día calendario.
type DailyTotalDTO struct {
	Date   string `json:"date"`
	InQty  int64  `json:"stock_in_qty"`
	OutQty int64  `json:"stock_out_qty"`
	Net    int64  `json:"net_movement"`
}

// MonthlyTotalDTO totales de un mes calendario.
type MonthlyTotalDTO struct {
	Month  string `json:"month"`
	InQty  int64  `json:"stock_in_qty"`
	OutQty int64  `json:"stock_out_qty"`
	Net    int64  `json:"net_movement"`
}

// DailyReportDTO respuesta de GET /api/reports/daily.
type DailyReportDTO struct {
	Branch string            `json:"branch"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Days   []DailyTotalDTO   `json:"days"`
	Months []MonthlyTotalDTO `json:"months"`
}

// BranchSummaryDTO desglose de una sucursal para la oficina central.
type BranchSummaryDTO struct {
	Branch          string `json:"branch"`
	BOECode         string `json:"boe_code,omitempty"`
	EntryCount      int    `json:"entry_count"`
	InQty           int64  `json:"stock_in_qty"`
	OutQty          int64  `json:"stock_out_qty"`
	EmployeeCount   int    `json:"employee_count"`
	ActiveActors    int    `json:"active_actors"`
	ClosingStock    int64  `json:"closing_stock"`
	LowStockCount   int    `json:"low_stock_count"`
	OutOfStockCount int    `json:"out_of_stock_count"`
}

// BranchOverviewDTO respuesta de GET /api/head-office/branches.
type BranchOverviewDTO struct {
	Branches     []BranchSummaryDTO `json:"branches"`
	TotalEntries int                `json:"total_entries"`
	ClosingStock int64              `json:"closing_stock"`
	AlertCount   int                `json:"alert_count"`
}

// EmployeeDTO integrante del roster.
type EmployeeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
	Branch   string `json:"branch"`
}

// RosterDTO respuesta de GET /api/head-office/employees.
type RosterDTO struct {
	Branch    string        `json:"branch"`
	Count     int           `json:"count"`
	Employees []EmployeeDTO `json:"employees"`
}

// SupplierDTO proveedor del directorio. Status es "active" o "inactive".
type SupplierDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Items   string `json:"items"`
	Status  string `json:"status"`
}

// SupplierListDTO respuesta de GET /api/head-office/suppliers.
// ActiveCount cuenta los activos del directorio completo, aunque la lista se filtre.
type SupplierListDTO struct {
	Count       int           `json:"count"`
	ActiveCount int           `json:"active_count"`
	Suppliers   []SupplierDTO `json:"suppliers"`
}
