package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	store *session.Store
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, store *session.Store) *AuthHandler {
	return &AuthHandler{uc: uc, store: store}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Abre la sesión por cookie y devuelve además un Bearer token para clientes API.
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	s, out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// Usuario inexistente y contraseña errónea responden igual.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: "inicio de sesión fallido"})
		}
		return writeError(c, err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := sess.Regenerate(); err != nil {
		return writeError(c, err)
	}
	sess.Set(sessUserID, s.UserID)
	if err := sess.Save(); err != nil {
		return writeError(c, err)
	}

	if wantsHTML(c) {
		return c.Redirect(safeNext(c.FormValue("next", c.Query("next"))), fiber.StatusFound)
	}
	return c.JSON(out)
}

// LoginForm godoc
// @Summary      Formulario de login
// @Description  Destino de la redirección para navegadores sin sesión. Indica cómo enviar las credenciales
// @Description  y a dónde se vuelve después. Con sesión abierta, un navegador va directo al destino.
// @Tags         auth
// @Produce      json
// @Param        next  query  string  false  "Ruta local a la que volver tras el login"
// @Success      200   {object}  dto.LoginFormResponse
// @Success      302
// @Router       /api/auth/login [get]
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	next := safeNext(c.Query("next"))
	if GetSession(c) != nil && wantsHTML(c) {
		return c.Redirect(next, fiber.StatusFound)
	}
	return c.JSON(dto.LoginFormResponse{
		Action: loginPath,
		Method: fiber.MethodPost,
		Fields: []string{"username", "password", "next"},
		Next:   next,
	})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Destruye la sesión por cookie y revoca el Bearer token presentado.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetTokenInfo(c)); err != nil {
		return writeError(c, err)
	}
	sess, err := h.store.Get(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return writeError(c, err)
	}
	if wantsHTML(c) {
		return c.Redirect(loginPath, fiber.StatusFound)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// safeNext solo acepta rutas locales como destino tras el login.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return homePath
	}
	return next
}
