package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/access"
)

// Locals keys de la sesión resuelta.
const (
	LocalSession   = "session"
	LocalTokenInfo = "token_info"
)

// Claves guardadas en la sesión por cookie.
const (
	sessUserID = "user_id"
	sessFlash  = "flash"
)

const msgForbidden = "No tienes permiso para acceder a esta página."

// Destinos de las redirecciones para navegadores.
const (
	loginPath = "/api/auth/login"
	homePath  = "/api/"
)

// SessionAuth resuelve la identidad de cada petición (cookie de sesión o Bearer JWT)
// y aplica la tabla de políticas de access antes de llegar al handler.
type SessionAuth struct {
	uc    *auth.AuthUseCase
	store *session.Store
}

// NewSessionAuth construye el middleware de autenticación/autorización.
func NewSessionAuth(uc *auth.AuthUseCase, store *session.Store) *SessionAuth {
	return &SessionAuth{uc: uc, store: store}
}

// Middleware resuelve la sesión y la deja en c.Locals. No rechaza peticiones anónimas:
// eso lo decide Authorize según la operación.
func (a *SessionAuth) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if token, ok := bearerToken(c); ok {
			s, info, err := a.uc.ParseToken(ctx, token)
			if err != nil {
				if errors.Is(err, domain.ErrSessionInvalid) {
					return c.Next()
				}
				return writeError(c, err)
			}
			fresh, err := a.uc.Refresh(ctx, s)
			if err != nil {
				if errors.Is(err, domain.ErrSessionInvalid) {
					return c.Next()
				}
				return writeError(c, err)
			}
			c.Locals(LocalSession, fresh)
			c.Locals(LocalTokenInfo, info)
			return c.Next()
		}

		sess, err := a.store.Get(c)
		if err != nil {
			return writeError(c, err)
		}
		userID, ok := sess.Get(sessUserID).(int64)
		if !ok || userID == 0 {
			return c.Next()
		}
		fresh, err := a.uc.Refresh(ctx, &access.Session{UserID: userID})
		if err != nil {
			if errors.Is(err, domain.ErrSessionInvalid) {
				// El usuario ya no existe: la sesión se invalida.
				if derr := sess.Destroy(); derr != nil {
					return writeError(c, derr)
				}
				return c.Next()
			}
			return writeError(c, err)
		}
		c.Locals(LocalSession, fresh)
		return c.Next()
	}
}

// Authorize evalúa la política de op para la sesión actual.
// Sin sesión: HTML -> 302 al login con ?next=, resto -> 401.
// Rol insuficiente: HTML -> 302 al inicio con aviso en la sesión, resto -> 403. El handler no se ejecuta.
func (a *SessionAuth) Authorize(op access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := access.Authorize(GetSession(c), op)
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			accessDenied.WithLabelValues(string(op), "unauthenticated").Inc()
			if wantsHTML(c) {
				return c.Redirect(loginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "inicia sesión para continuar"})
		}

		accessDenied.WithLabelValues(string(op), "forbidden").Inc()
		requestLog(c).Info().Str("operation", string(op)).Int64("user_id", GetUserID(c)).Msg("acceso denegado")
		if wantsHTML(c) {
			if err := a.setFlash(c, msgForbidden); err != nil {
				return writeError(c, err)
			}
			return c.Redirect(homePath, fiber.StatusFound)
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: msgForbidden})
	}
}

func (a *SessionAuth) setFlash(c *fiber.Ctx, msg string) error {
	sess, err := a.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessFlash, msg)
	return sess.Save()
}

// popFlash devuelve y borra el aviso pendiente.
func (a *SessionAuth) popFlash(c *fiber.Ctx) (string, error) {
	sess, err := a.store.Get(c)
	if err != nil {
		return "", err
	}
	msg, _ := sess.Get(sessFlash).(string)
	if msg == "" {
		return "", nil
	}
	sess.Delete(sessFlash)
	return msg, sess.Save()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// wantsHTML indica si el cliente es un navegador (Accept incluye text/html).
func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

// GetSession devuelve la sesión resuelta o nil si la petición es anónima.
func GetSession(c *fiber.Ctx) *access.Session {
	s, _ := c.Locals(LocalSession).(*access.Session)
	return s
}

// GetTokenInfo devuelve los datos del Bearer token usado, si lo hubo.
func GetTokenInfo(c *fiber.Ctx) *auth.TokenInfo {
	info, _ := c.Locals(LocalTokenInfo).(*auth.TokenInfo)
	return info
}

// GetUserID devuelve el UserID de la sesión (0 si es anónima).
func GetUserID(c *fiber.Ctx) int64 {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return 0
}

// GetRole devuelve el rol de la sesión ("" si es anónima).
func GetRole(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.Role
	}
	return ""
}
