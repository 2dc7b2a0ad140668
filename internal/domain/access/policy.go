// Package access concentra el control de acceso: la sesión autenticada y la tabla
// de políticas que asigna a cada operación el rol mínimo requerido.
//
// Ninguna ruta ni caso de uso compara roles por su cuenta; todos consultan Authorize.
package access

import (
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
)

// Operation identifica una acción protegida.
type Operation string

// Operaciones protegidas.
const (
	HomeView      Operation = "home.view"
	ContactView   Operation = "contact.view"
	SessionLogout Operation = "session.logout"
	DashboardView Operation = "dashboard.view"

	SupplierCreate    Operation = "supplier.create"
	SupplierUpdate    Operation = "supplier.update"
	SupplierDelete    Operation = "supplier.delete"
	SupplierList      Operation = "supplier.list"
	SupplierGet       Operation = "supplier.get"
	SupplierStatement Operation = "supplier.statement"

	DebtCreate Operation = "debt.create"
	DebtUpdate Operation = "debt.update"
	DebtDelete Operation = "debt.delete"
	DebtList   Operation = "debt.list"
	DebtGet    Operation = "debt.get"

	InvoiceCreate Operation = "invoice.create"
	InvoiceUpdate Operation = "invoice.update"
	InvoiceDelete Operation = "invoice.delete"
	InvoiceList   Operation = "invoice.list"
	InvoiceGet    Operation = "invoice.get"
	InvoiceFile   Operation = "invoice.file"

	PaymentCreate Operation = "payment.create"
	PaymentUpdate Operation = "payment.update"
	PaymentDelete Operation = "payment.delete"
	PaymentList   Operation = "payment.list"
	PaymentGet    Operation = "payment.get"
	PaymentFile   Operation = "payment.file"
)

// policy es la única fuente de verdad operación -> rol requerido.
// Los listados de proveedores y deudas son solo admin también para lectura.
var policy = map[Operation]string{
	HomeView:      entity.RoleUser,
	ContactView:   entity.RoleUser,
	SessionLogout: entity.RoleUser,
	DashboardView: entity.RoleAdmin,

	SupplierCreate:    entity.RoleAdmin,
	SupplierUpdate:    entity.RoleAdmin,
	SupplierDelete:    entity.RoleAdmin,
	SupplierList:      entity.RoleAdmin,
	SupplierGet:       entity.RoleAdmin,
	SupplierStatement: entity.RoleAdmin,

	DebtCreate: entity.RoleAdmin,
	DebtUpdate: entity.RoleAdmin,
	DebtDelete: entity.RoleAdmin,
	DebtList:   entity.RoleAdmin,
	DebtGet:    entity.RoleAdmin,

	InvoiceCreate: entity.RoleUser,
	InvoiceUpdate: entity.RoleUser,
	InvoiceDelete: entity.RoleAdmin,
	InvoiceList:   entity.RoleUser,
	InvoiceGet:    entity.RoleUser,
	InvoiceFile:   entity.RoleUser,

	PaymentCreate: entity.RoleUser,
	PaymentUpdate: entity.RoleAdmin,
	PaymentDelete: entity.RoleAdmin,
	PaymentList:   entity.RoleUser,
	PaymentGet:    entity.RoleUser,
	PaymentFile:   entity.RoleUser,
}

// Session es la identidad autenticada de una petición.
type Session struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin indica si la sesión tiene rol admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == entity.RoleAdmin
}

// RequiredRole devuelve el rol que exige op; ok es false si la operación no está en la tabla.
func RequiredRole(op Operation) (role string, ok bool) {
	role, ok = policy[op]
	return role, ok
}

// Allows aplica la regla de roles: el rol coincide con el requerido o es admin.
func Allows(role, required string) bool {
	if !entity.ValidRole(role) {
		return false
	}
	return role == required || role == entity.RoleAdmin
}

// Authorize decide si la sesión puede ejecutar op.
// Sin sesión devuelve domain.ErrUnauthorized; con rol insuficiente u operación
// desconocida devuelve domain.ErrForbidden.
func Authorize(s *Session, op Operation) error {
	if s == nil {
		return domain.ErrUnauthorized
	}
	required, ok := RequiredRole(op)
	if !ok {
		return domain.ErrForbidden
	}
	if !Allows(s.Role, required) {
		return domain.ErrForbidden
	}
	return nil
}

// Operations devuelve todas las operaciones registradas en la tabla.
func Operations() []Operation {
	out := make([]Operation, 0, len(policy))
	for op := range policy {
		out = append(out, op)
	}
	return out
}
