package repository

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
)

// DebtRepository define el puerto de persistencia para Debt.
// Create/Update devuelven domain.ErrInvalidReference si el proveedor no existe.
type DebtRepository interface {
	Create(ctx context.Context, debt *entity.Debt) error
	GetByID(ctx context.Context, id int64) (*entity.Debt, error)
	List(ctx context.Context) ([]*entity.Debt, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Debt, error)
	Update(ctx context.Context, debt *entity.Debt) error
	Delete(ctx context.Context, id int64) error
}
