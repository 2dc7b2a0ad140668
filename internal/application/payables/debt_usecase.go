package payables

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// DebtUseCase casos de uso para deudas con proveedores.
type DebtUseCase struct {
	repo repository.DebtRepository
}

// NewDebtUseCase construye el caso de uso.
func NewDebtUseCase(repo repository.DebtRepository) *DebtUseCase {
	return &DebtUseCase{repo: repo}
}

// Create registra una deuda. Un proveedor inexistente devuelve domain.ErrInvalidReference.
func (uc *DebtUseCase) Create(ctx context.Context, in dto.DebtRequest) (*dto.DebtResponse, error) {
	d, err := debtFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return ToDebtResponse(d), nil
}

// Update sobrescribe todos los campos de la deuda.
func (uc *DebtUseCase) Update(ctx context.Context, id int64, in dto.DebtRequest) (*dto.DebtResponse, error) {
	d, err := debtFromRequest(in)
	if err != nil {
		return nil, err
	}
	d.ID = id
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return ToDebtResponse(d), nil
}

// Delete elimina una deuda.
func (uc *DebtUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene una deuda.
func (uc *DebtUseCase) GetByID(ctx context.Context, id int64) (*dto.DebtResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return ToDebtResponse(d), nil
}

// List lista todas las deudas.
func (uc *DebtUseCase) List(ctx context.Context) ([]*dto.DebtResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDebtResponses(list), nil
}

// ListBySupplier lista las deudas de un proveedor.
func (uc *DebtUseCase) ListBySupplier(ctx context.Context, supplierID int64) ([]*dto.DebtResponse, error) {
	list, err := uc.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toDebtResponses(list), nil
}

func debtFromRequest(in dto.DebtRequest) (*entity.Debt, error) {
	var p fieldParser
	d := &entity.Debt{
		SupplierID:  p.id("supplier_id", in.SupplierID),
		Amount:      p.amount("amount", in.Amount),
		DueDate:     p.date("due_date", in.DueDate),
		Description: in.Description,
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	return d, nil
}

// ToDebtResponse convierte la entidad a su salida.
func ToDebtResponse(d *entity.Debt) *dto.DebtResponse {
	return &dto.DebtResponse{
		ID:          d.ID,
		SupplierID:  d.SupplierID,
		Amount:      formatAmount(d.Amount),
		DueDate:     formatDate(d.DueDate),
		Description: d.Description,
	}
}

func toDebtResponses(list []*entity.Debt) []*dto.DebtResponse {
	out := make([]*dto.DebtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToDebtResponse(d))
	}
	return out
}
