package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-register/internal/application/inventory"
)

// InventoryHandler stock reconstruido, reposición, alertas y catálogo (protegido).
type InventoryHandler struct {
	stock         *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, replenishment: replenishment}
}

// GetStock godoc
// @Summary      Stock actual por artículo
// @Description  Reconstruye las cantidades desde el log. Si el backend falla y hay un snapshot previo
//
//	del mismo alcance, se devuelve con stale=true y load_error.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch  query  string  false  "Solo oficina central. Vacío = todas las sucursales."
// @Success      200  {object}  dto.StockSnapshotDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	snap, err := h.stock.Snapshot(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(snap)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Artículos en o bajo su umbral de reorden con la cantidad sugerida de pedido,
//
//	ordenados por quiebre de stock y salidas de los últimos 30 días.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch  query  string  false  "Solo oficina central. Vacío = todas las sucursales."
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"branch":         scope.String(),
		"total":          len(list),
		"replenishments": list,
	})
}

// GetNotifications alertas de stock agotado y bajo el umbral.
// GET /api/notifications?branch=
func (h *InventoryHandler) GetNotifications(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.Notifications(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCatalog catálogo completo, o filtrado por nombre, HSN o categoría con ?q=.
// GET /api/catalog
func (h *InventoryHandler) GetCatalog(c *fiber.Ctx) error {
	items, err := h.stock.Catalog(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
