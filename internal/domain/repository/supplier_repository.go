package repository

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
// Update y Delete devuelven domain.ErrNotFound si ninguna fila coincide;
// Delete devuelve domain.ErrConflict si el proveedor tiene deudas o facturas.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id int64) error
}
