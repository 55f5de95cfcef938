package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-register/internal/application/analytics"
)

// DashboardHandler reportes Today / Month-to-date y totales diarios.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el reporte del día y del mes en curso del alcance.
// GET /api/reports/summary?branch=
//
// Respuesta: ReportSummaryDTO (today, month_to_date, closing_stock, low_stock_count,
// stock_in, stock_out, valuation, recent_movements[5], date_label).
// Las fechas se calculan en el servidor con REPORT_TIMEZONE.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	summary, err := h.uc.GetSummary(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetDaily totales de entradas y salidas por día local.
// GET /api/reports/daily?start_date=&end_date=&branch=
func (h *DashboardHandler) GetDaily(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.uc.DailyReport(c.Context(), scope, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
