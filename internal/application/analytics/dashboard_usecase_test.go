package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sqlite"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummarize_TotalesYVencimientos(t *testing.T) {
	now := time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)
	suppliers := []*entity.Supplier{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Beta"}}
	debts := []*entity.Debt{
		{ID: 10, SupplierID: 1, Amount: decimal.RequireFromString("500"), DueDate: day("2026-10-01")},
		{ID: 11, SupplierID: 2, Amount: decimal.RequireFromString("50"), DueDate: day("2026-12-01")},
	}
	invoices := []*entity.Invoice{
		{ID: 20, SupplierID: 1, Amount: decimal.RequireFromString("300"), DueDate: day("2026-10-22")},
		{ID: 21, SupplierID: 2, Amount: decimal.RequireFromString("100"), DueDate: day("2026-09-30")},
	}
	payments := []*entity.Payment{
		{ID: 30, InvoiceID: 20, Amount: decimal.RequireFromString("100")},
		{ID: 31, InvoiceID: 21, Amount: decimal.RequireFromString("100")},
	}

	got := summarize(now, suppliers, debts, invoices, payments)

	assert.Equal(t, 2, got.Suppliers)
	assert.Equal(t, "550.00", got.TotalDebts)
	assert.Equal(t, "400.00", got.TotalInvoiced)
	assert.Equal(t, "200.00", got.TotalPaid)
	assert.Equal(t, "750.00", got.Outstanding)
	assert.Equal(t, "Octubre 2026", got.DateLabel)

	require.Len(t, got.Overdue, 1, "la factura 21 está saldada y no cuenta")
	assert.Equal(t, kindDebt, got.Overdue[0].Kind)
	assert.Equal(t, int64(10), got.Overdue[0].ID)
	assert.Equal(t, "Acme", got.Overdue[0].SupplierName)

	require.Len(t, got.DueSoon, 1)
	assert.Equal(t, kindInvoice, got.DueSoon[0].Kind)
	assert.Equal(t, "200.00", got.DueSoon[0].Balance)
	assert.Equal(t, "2026-10-22", got.DueSoon[0].DueDate)
}

func TestSummarize_SinDatos(t *testing.T) {
	got := summarize(time.Now(), nil, nil, nil, nil)
	assert.Equal(t, "0.00", got.Outstanding)
	assert.NotNil(t, got.Overdue)
	assert.NotNil(t, got.DueSoon)
}

func TestGetSummary_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "dash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repos := sqlite.NewRepositories(db)

	s := &entity.Supplier{Name: "Acme"}
	require.NoError(t, repos.Suppliers.Create(ctx, s))
	require.NoError(t, repos.Debts.Create(ctx, &entity.Debt{
		SupplierID: s.ID, Amount: decimal.RequireFromString("500.00"), DueDate: day("2025-01-01"),
	}))

	uc := NewDashboardUseCase(repos)
	uc.now = func() time.Time { return day("2025-01-05") }

	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Suppliers)
	assert.Equal(t, "500.00", got.Outstanding)
	require.Len(t, got.Overdue, 1)
	assert.Equal(t, s.ID, got.Overdue[0].SupplierID)
}
