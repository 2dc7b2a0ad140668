package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
)

// HomeHandler vistas generales para cualquier usuario autenticado.
type HomeHandler struct {
	auth    *SessionAuth
	appName string
}

// NewHomeHandler construye el handler de inicio.
func NewHomeHandler(a *SessionAuth, appName string) *HomeHandler {
	return &HomeHandler{auth: a, appName: appName}
}

// Home godoc
// @Summary      Inicio
// @Description  Usuario actual y aviso pendiente (se consume al leerlo).
// @Tags         home
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.HomeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/ [get]
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	notice, err := h.auth.popFlash(c)
	if err != nil {
		return writeError(c, err)
	}
	s := GetSession(c)
	return c.JSON(dto.HomeResponse{
		User:    auth.ToUserResponse(s),
		IsAdmin: s.IsAdmin(),
		Notice:  notice,
	})
}

// Contact godoc
// @Summary      Contacto
// @Tags         home
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ContactResponse
// @Router       /api/contact [get]
func (h *HomeHandler) Contact(c *fiber.Ctx) error {
	return c.JSON(dto.ContactResponse{
		App:     h.appName,
		Message: "Para soporte escribe al administrador del sistema.",
	})
}
