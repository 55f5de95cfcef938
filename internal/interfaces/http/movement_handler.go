package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-register/internal/application/audit"
	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/pkg/validator"
)

// MovementHandler ingreso, consulta, edición y eliminación de movimientos (protegido).
type MovementHandler struct {
	uc    *inventory.MovementUseCase
	trail *audit.Trail
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, trail *audit.Trail) *MovementHandler {
	return &MovementHandler{uc: uc, trail: trail}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_name, direction (in|out), quantity > 0, entry_date opcional"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return validationFailed(c, errs)
	}
	out, err := h.uc.Register(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Movimientos de un período
// @Description  Orden cronológico ascendente. Sin fechas: mes en curso hasta hoy; una sola fecha: ese día.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        branch      query  string  false  "Solo oficina central"
// @Success      200  {object}  dto.MovementListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	scope, err := ResolveScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), scope, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar dirección y cantidad (auditado)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del movimiento"
// @Param        body  body  dto.EditMovementRequest  true  "direction, quantity"
// @Success      200  {object}  dto.EditMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return validationFailed(c, errs)
	}
	outcome, err := h.trail.RecordEdit(c.Context(), GetActor(c), c.Params("id"), entity.Direction(in.Direction), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.EditMovementResponse{
		Movement: dto.FromMovement(outcome.Movement),
		Audit:    dto.FromEditLogEntry(outcome.Entry),
	}
	if outcome.Warning != nil {
		resp.Warning = outcome.Warning.Error()
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar movimiento (auditado)
// @Description  Si el movimiento se eliminó pero la auditoría no se pudo guardar, responde 200 con warning.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.DeleteMovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.trail.RecordDeletion(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.DeleteMovementResponse{Deleted: dto.FromMovement(outcome.Deleted)}
	if outcome.Warning != nil {
		resp.Warning = outcome.Warning.Error()
	}
	return c.JSON(resp)
}
