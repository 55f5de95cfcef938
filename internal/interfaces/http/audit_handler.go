package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-register/internal/application/audit"
)

// AuditHandler consulta de los logs de edición y eliminación del alcance.
type AuditHandler struct {
	trail *audit.Trail
}

// NewAuditHandler construye el handler.
func NewAuditHandler(trail *audit.Trail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// GetEdits GET /api/audit/edits?branch=
func (h *AuditHandler) GetEdits(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.trail.ListEdits(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDeletions GET /api/audit/deletions?branch=
func (h *AuditHandler) GetDeletions(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.trail.ListDeletions(c.Context(), scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
