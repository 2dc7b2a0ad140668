package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
)

// InvoiceHandler maneja facturas de proveedores y sus adjuntos.
type InvoiceHandler struct {
	uc *payables.InvoiceUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(uc *payables.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura
// @Description  Acepta multipart con el adjunto en el campo "file" (opcional).
// @Tags         invoices
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.InvoiceRequest  true   "supplier_id, amount, issue_date, due_date, payment_terms"
// @Param        file  formData  file                false  "Adjunto"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
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
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        supplier_id  query  int  false  "Filtrar por proveedor"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	supplierID, filtered, err := queryID(c, "supplier_id")
	if err != nil {
		return writeError(c, err)
	}
	var list []*dto.InvoiceResponse
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
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Actualizar factura
// @Description  Sin archivo nuevo se conserva el adjunto anterior.
// @Tags         invoices
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true   "ID de la factura"
// @Param        body  body      dto.InvoiceRequest  true   "campos"
// @Param        file  formData  file                false  "Adjunto"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.InvoiceRequest
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
// @Summary      Eliminar factura
// @Description  Falla con 409 si la factura tiene pagos.
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Descargar adjunto de la factura
// @Tags         invoices
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/file [get]
func (h *InvoiceHandler) File(c *fiber.Ctx) error {
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
