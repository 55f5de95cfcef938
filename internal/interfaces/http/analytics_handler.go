package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-register/internal/application/analytics"
	"github.com/jhoicas/stock-register/internal/domain"
)

// HeadOfficeHandler vistas de oficina central (protegido con RequireRole(head_office)).
type HeadOfficeHandler struct {
	uc *appanalytics.BranchOverviewUseCase
}

// NewHeadOfficeHandler construye el handler.
func NewHeadOfficeHandler(uc *appanalytics.BranchOverviewUseCase) *HeadOfficeHandler {
	return &HeadOfficeHandler{uc: uc}
}

// GetBranches godoc
// @Summary      Resumen por sucursal
// @Description  Movimientos, cantidades, personal y stock reconstruido de cada sucursal.
// @Tags         head-office
// @Security     Bearer
// @Produce      json
// @Param        branch  query  string  false  "Limitar a una sucursal"
// @Success      200  {object}  dto.BranchOverviewDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/head-office/branches [get]
func (h *HeadOfficeHandler) GetBranches(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Overview(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetEmployees godoc
// @Summary      Personal por sucursal
// @Tags         head-office
// @Security     Bearer
// @Produce      json
// @Param        branch  query  string  false  "Limitar a una sucursal"
// @Success      200  {object}  dto.RosterDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/head-office/employees [get]
func (h *HeadOfficeHandler) GetEmployees(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Roster(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSuppliers godoc
// @Summary      Directorio de proveedores
// @Tags         head-office
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active para omitir los inactivos"
// @Success      200  {object}  dto.SupplierListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/head-office/suppliers [get]
func (h *HeadOfficeHandler) GetSuppliers(c *fiber.Ctx) error {
	var activeOnly bool
	switch c.Query("status") {
	case "":
	case "active":
		activeOnly = true
	default:
		return writeError(c, fmt.Errorf("%w: status debe ser active", domain.ErrInvalidInput))
	}
	out, err := h.uc.Suppliers(c.Context(), activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
