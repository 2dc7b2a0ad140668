// Package analytics contiene el tablero de cuentas por pagar: saldos globales y vencimientos.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// DueSoonDays ventana de "próximos a vencer".
const DueSoonDays = 7

const (
	kindDebt    = "debt"
	kindInvoice = "invoice"
)

// DashboardUseCase arma el resumen a partir de los repositorios (solo lectura).
type DashboardUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// GetSummary carga las cuatro tablas en paralelo y calcula totales y vencimientos.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		suppliers []*entity.Supplier
		debts     []*entity.Debt
		invoices  []*entity.Invoice
		payments  []*entity.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		suppliers, err = uc.repos.Suppliers.List(gctx)
		return wrap("proveedores", err)
	})
	g.Go(func() (err error) {
		debts, err = uc.repos.Debts.List(gctx)
		return wrap("deudas", err)
	})
	g.Go(func() (err error) {
		invoices, err = uc.repos.Invoices.List(gctx)
		return wrap("facturas", err)
	})
	g.Go(func() (err error) {
		payments, err = uc.repos.Payments.List(gctx)
		return wrap("pagos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summarize(uc.now(), suppliers, debts, invoices, payments), nil
}

func summarize(now time.Time, suppliers []*entity.Supplier, debts []*entity.Debt, invoices []*entity.Invoice, payments []*entity.Payment) *dto.DashboardSummaryDTO {
	names := make(map[int64]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	paidByInvoice := make(map[int64]decimal.Decimal, len(invoices))
	totalPaid := decimal.Zero
	for _, p := range payments {
		paidByInvoice[p.InvoiceID] = paidByInvoice[p.InvoiceID].Add(p.Amount)
		totalPaid = totalPaid.Add(p.Amount)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	soonLimit := today.AddDate(0, 0, DueSoonDays)
	out := &dto.DashboardSummaryDTO{
		Suppliers:   len(suppliers),
		Overdue:     []dto.DueItemDTO{},
		DueSoon:     []dto.DueItemDTO{},
		DueSoonDays: DueSoonDays,
		DateLabel:   monthLabel(now),
	}
	classify := func(kind string, id, supplierID int64, due time.Time, balance decimal.Decimal) {
		if !balance.IsPositive() {
			return
		}
		item := dto.DueItemDTO{
			Kind:         kind,
			ID:           id,
			SupplierID:   supplierID,
			SupplierName: names[supplierID],
			DueDate:      due.Format(dto.DateLayout),
			Balance:      balance.StringFixed(2),
		}
		switch {
		case due.Before(today):
			out.Overdue = append(out.Overdue, item)
		case !due.After(soonLimit):
			out.DueSoon = append(out.DueSoon, item)
		}
	}

	totalDebts := decimal.Zero
	for _, d := range debts {
		totalDebts = totalDebts.Add(d.Amount)
		classify(kindDebt, d.ID, d.SupplierID, d.DueDate, d.Amount)
	}
	totalInvoiced := decimal.Zero
	for _, inv := range invoices {
		totalInvoiced = totalInvoiced.Add(inv.Amount)
		classify(kindInvoice, inv.ID, inv.SupplierID, inv.DueDate, inv.Amount.Sub(paidByInvoice[inv.ID]))
	}

	byDueDate := func(items []dto.DueItemDTO) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].DueDate < items[j].DueDate })
	}
	byDueDate(out.Overdue)
	byDueDate(out.DueSoon)

	out.TotalDebts = totalDebts.StringFixed(2)
	out.TotalInvoiced = totalInvoiced.StringFixed(2)
	out.TotalPaid = totalPaid.StringFixed(2)
	out.Outstanding = totalDebts.Add(totalInvoiced).Sub(totalPaid).StringFixed(2)
	return out
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
