package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
)

// DebtHandler maneja deudas con proveedores.
type DebtHandler struct {
	uc *payables.DebtUseCase
}

// NewDebtHandler construye el handler de deudas.
func NewDebtHandler(uc *payables.DebtUseCase) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar deuda
// @Tags         debts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DebtRequest  true  "supplier_id, amount, due_date"
// @Success      201   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/debts [post]
func (h *DebtHandler) Create(c *fiber.Ctx) error {
	var in dto.DebtRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar deudas
// @Tags         debts
// @Produce      json
// @Security     BearerAuth
// @Param        supplier_id  query  int  false  "Filtrar por proveedor"
// @Success      200  {array}   dto.DebtResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	supplierID, filtered, err := queryID(c, "supplier_id")
	if err != nil {
		return writeError(c, err)
	}
	var list []*dto.DebtResponse
	if filtered {
		list, err = h.uc.ListBySupplier(c.UserContext(), supplierID)
	} else {
		list, err = h.uc.List(c.UserContext())
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener deuda
// @Tags         debts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la deuda"
// @Success      200  {object}  dto.DebtResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [get]
func (h *DebtHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar deuda
// @Tags         debts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int              true  "ID de la deuda"
// @Param        body  body  dto.DebtRequest  true  "campos"
// @Success      200   {object}  dto.DebtResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [put]
func (h *DebtHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.DebtRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar deuda
// @Tags         debts
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la deuda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [delete]
func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
