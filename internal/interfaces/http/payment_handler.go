package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
)

// PaymentHandler maneja pagos de facturas y sus comprobantes.
type PaymentHandler struct {
	uc *payables.PaymentUseCase
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(uc *payables.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pago
// @Description  Acepta multipart con el adjunto en el campo "file" (opcional).
// @Tags         payments
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.PaymentRequest  true   "invoice_id, amount, date, method"
// @Param        file  formData  file                false  "Adjunto"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	att, release, err := formAttachment(c)
	if err != nil {
		return writeError(c, err)
	}
	defer release()

	out, err := h.uc.Create(c.UserContext(), in, att)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pagos
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        invoice_id  query  int  false  "Filtrar por factura"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	invoiceID, filtered, err := queryID(c, "invoice_id")
	if err != nil {
		return writeError(c, err)
	}
	var list []*dto.PaymentResponse
	if filtered {
		list, err = h.uc.ListByInvoice(c.UserContext(), invoiceID)
	} else {
		list, err = h.uc.List(c.UserContext())
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener pago
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar pago
// @Description  Sin archivo nuevo se conserva el adjunto anterior.
// @Tags         payments
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true   "ID del pago"
// @Param        body  body      dto.PaymentRequest  true   "campos"
// @Param        file  formData  file                false  "Adjunto"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	att, release, err := formAttachment(c)
	if err != nil {
		return writeError(c, err)
	}
	defer release()

	out, err := h.uc.Update(c.UserContext(), id, in, att)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// File godoc
// @Summary      Descargar adjunto del pago
// @Tags         payments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/file [get]
func (h *PaymentHandler) File(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	path, err := h.uc.FilePath(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendStoredFile(c, path)
}
