package payables

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// StatementUseCase arma el estado de cuenta de un proveedor: deudas, facturas
// con lo abonado y el saldo pendiente.
type StatementUseCase struct {
	tx       TxRunner
	renderer StatementRenderer
	now      func() time.Time
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(tx TxRunner, renderer StatementRenderer) *StatementUseCase {
	return &StatementUseCase{tx: tx, renderer: renderer, now: time.Now}
}

// Build lee todo dentro de una transacción para que los totales sean coherentes.
func (uc *StatementUseCase) Build(ctx context.Context, supplierID int64) (*dto.SupplierStatement, error) {
	var st *dto.SupplierStatement
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		supplier, err := repos.Suppliers.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		debts, err := repos.Debts.ListBySupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		invoices, err := repos.Invoices.ListBySupplier(ctx, supplierID)
		if err != nil {
			return err
		}

		st = &dto.SupplierStatement{
			Supplier:     *ToSupplierResponse(supplier),
			GeneratedAt:  formatDate(uc.now()),
			Debts:        make([]dto.DebtResponse, 0, len(debts)),
			Invoices:     make([]dto.StatementInvoiceLine, 0, len(invoices)),
			TotalDebts:   decimal.Zero,
			TotalInvoice: decimal.Zero,
			TotalPaid:    decimal.Zero,
		}
		for _, d := range debts {
			st.Debts = append(st.Debts, *ToDebtResponse(d))
			st.TotalDebts = st.TotalDebts.Add(d.Amount)
		}
		for _, inv := range invoices {
			payments, err := repos.Payments.ListByInvoice(ctx, inv.ID)
			if err != nil {
				return err
			}
			paid := decimal.Zero
			for _, p := range payments {
				paid = paid.Add(p.Amount)
			}
			st.Invoices = append(st.Invoices, dto.StatementInvoiceLine{
				Invoice: *ToInvoiceResponse(inv),
				Paid:    paid,
				Balance: inv.Amount.Sub(paid),
			})
			st.TotalInvoice = st.TotalInvoice.Add(inv.Amount)
			st.TotalPaid = st.TotalPaid.Add(paid)
		}
		st.Balance = st.TotalDebts.Add(st.TotalInvoice).Sub(st.TotalPaid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Render arma el estado de cuenta y lo entrega como PDF.
func (uc *StatementUseCase) Render(ctx context.Context, supplierID int64) ([]byte, error) {
	st, err := uc.Build(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderStatement(st)
}
