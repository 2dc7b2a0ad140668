package dto

// Formatos de transporte compartidos por todos los DTOs.
const (
	DateLayout = "2006-01-02"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"` // campos inválidos en errores de validación
}

// IDResponse respuesta de creación: solo el identificador generado.
type IDResponse struct {
	ID int64 `json:"id"`
}

// MessageResponse respuesta simple con un mensaje para el usuario.
type MessageResponse struct {
	Message string `json:"message"`
}
