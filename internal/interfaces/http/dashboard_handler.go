package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/analytics"
)

// DashboardHandler expone el tablero de cuentas por pagar.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Tablero de cuentas por pagar
// @Description  Totales de deudas, facturas y pagos; vencidos y próximos a vencer con saldo.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
