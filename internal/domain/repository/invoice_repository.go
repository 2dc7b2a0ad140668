package repository

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Delete devuelve domain.ErrConflict si la factura tiene pagos registrados.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id int64) error
}
