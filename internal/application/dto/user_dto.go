package dto

// LoginRequest credenciales de inicio de sesión (JSON o formulario).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse token para clientes API y datos del usuario autenticado.
// La sesión por cookie se establece en paralelo.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"` // RFC 3339
	User      UserResponse `json:"user"`
}

// LoginFormResponse describe el formulario de login y el destino tras autenticarse.
type LoginFormResponse struct {
	Action string   `json:"action"`
	Method string   `json:"method"`
	Fields []string `json:"fields"`
	Next   string   `json:"next"`
}

// HomeResponse vista de inicio: usuario actual y aviso pendiente (p. ej. acceso denegado).
type HomeResponse struct {
	User    UserResponse `json:"user"`
	IsAdmin bool         `json:"is_admin"`
	Notice  string       `json:"notice,omitempty"`
}

// ContactResponse datos de contacto de la aplicación.
type ContactResponse struct {
	App     string `json:"app"`
	Message string `json:"message"`
}
