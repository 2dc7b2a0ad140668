package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidReference = errors.New("referencia a un registro inexistente")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("el registro tiene dependencias")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrUserNotFound     = fmt.Errorf("usuario no encontrado: %w", ErrUnauthorized)
	ErrBadCredential    = fmt.Errorf("contraseña incorrecta: %w", ErrUnauthorized)
	ErrSessionInvalid   = fmt.Errorf("sesión inválida: %w", ErrUnauthorized)
)

// ValidationError lista los campos requeridos ausentes o con formato inválido.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos o requeridos: " + strings.Join(e.Fields, ", ")
}

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Add registra un campo inválido.
func (e *ValidationError) Add(field string) {
	e.Fields = append(e.Fields, field)
}

// Err devuelve nil si no se registró ningún campo.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
