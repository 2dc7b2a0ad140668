package payables_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/filestore"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sqlite"
)

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) Stage(ctx context.Context, name string, content io.Reader) (payables.StagedFile, error) {
	args := m.Called(ctx, name, content)
	staged, _ := args.Get(0).(payables.StagedFile)
	return staged, args.Error(1)
}

type fixture struct {
	repos     repository.Repositories
	tx        *sqlite.TxRunner
	suppliers *payables.SupplierUseCase
	debts     *payables.DebtUseCase
	invoices  *payables.InvoiceUseCase
	payments  *payables.PaymentUseCase
	uploadDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "payables.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	uploadDir := t.TempDir()
	files, err := filestore.NewLocal(uploadDir, 0)
	require.NoError(t, err)

	repos := sqlite.NewRepositories(db)
	return &fixture{
		repos:     repos,
		tx:        sqlite.NewTxRunner(db),
		suppliers: payables.NewSupplierUseCase(repos.Suppliers),
		debts:     payables.NewDebtUseCase(repos.Debts),
		invoices:  payables.NewInvoiceUseCase(repos.Invoices, files),
		payments:  payables.NewPaymentUseCase(repos.Payments, files),
		uploadDir: uploadDir,
	}
}

func (f *fixture) acme(t *testing.T) *dto.SupplierResponse {
	t.Helper()
	s, err := f.suppliers.Create(context.Background(), dto.SupplierRequest{Name: "Acme", Email: "a@x.com", Phone: "555-0100"})
	require.NoError(t, err)
	return s
}

func (f *fixture) invoice(t *testing.T, supplierID int64, amount string) *dto.InvoiceResponse {
	t.Helper()
	inv, err := f.invoices.Create(context.Background(), dto.InvoiceRequest{
		SupplierID:   itoa(supplierID),
		Amount:       amount,
		IssueDate:    "2025-01-01",
		DueDate:      "2025-01-31",
		PaymentTerms: "30 días",
	}, nil)
	require.NoError(t, err)
	return inv
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestSupplier_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := dto.SupplierRequest{Name: "Acme", Address: "Calle 1 #2-3", Phone: "555-0100", Email: "a@x.com"}
	created, err := f.suppliers.Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := f.suppliers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &dto.SupplierResponse{ID: created.ID, Name: in.Name, Address: in.Address, Phone: in.Phone, Email: in.Email}, got)
}

func TestSupplier_NombreRequerido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.suppliers.Create(ctx, dto.SupplierRequest{Name: "   ", Email: "a@x.com"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "una validación fallida no inserta nada")
}

func TestSupplier_UpdateSobrescribeTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	_, err := f.suppliers.Update(ctx, s.ID, dto.SupplierRequest{Name: "Acme 2"})
	require.NoError(t, err)
	got, err := f.suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme 2", got.Name)
	assert.Empty(t, got.Email, "update no mezcla campos: los vacíos se guardan vacíos")
}

func TestSupplier_InexistenteNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.acme(t)

	_, err := f.suppliers.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.suppliers.Update(ctx, 404, dto.SupplierRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.suppliers.Delete(ctx, 404), domain.ErrNotFound)

	list, err := f.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "borrar un id inexistente no cambia la tabla")
}

func TestDebt_EndToEndConProveedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	_, err := f.debts.Create(ctx, dto.DebtRequest{SupplierID: itoa(s.ID), Amount: "500.00", DueDate: "2025-01-01"})
	require.NoError(t, err)

	list, err := f.debts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "500.00", list[0].Amount)
	assert.Equal(t, s.ID, list[0].SupplierID)
	assert.Equal(t, "2025-01-01", list[0].DueDate)

	bySupplier, err := f.debts.ListBySupplier(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, bySupplier, 1)
}

func TestDebt_Validacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	cases := map[string]dto.DebtRequest{
		"monto cero":      {SupplierID: itoa(s.ID), Amount: "0", DueDate: "2025-01-01"},
		"monto negativo":  {SupplierID: itoa(s.ID), Amount: "-5", DueDate: "2025-01-01"},
		"monto no numero": {SupplierID: itoa(s.ID), Amount: "mucho", DueDate: "2025-01-01"},
		"fecha inválida":  {SupplierID: itoa(s.ID), Amount: "10", DueDate: "01/01/2025"},
		"tres decimales":  {SupplierID: itoa(s.ID), Amount: "12.345", DueDate: "2025-01-01"},
		"menos de 1 cent": {SupplierID: itoa(s.ID), Amount: "0.001", DueDate: "2025-01-01"},
		"fuera de rango":  {SupplierID: itoa(s.ID), Amount: "10000000000000000", DueDate: "2025-01-01"},
		"sin proveedor":   {Amount: "10", DueDate: "2025-01-01"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.debts.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	var verr *domain.ValidationError
	_, err := f.debts.Create(ctx, dto.DebtRequest{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"supplier_id", "amount", "due_date"}, verr.Fields)
}

func TestDebt_MontoConMasDeDosDecimales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	var verr *domain.ValidationError
	_, err := f.debts.Create(ctx, dto.DebtRequest{SupplierID: itoa(s.ID), Amount: "12.345", DueDate: "2025-01-01"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"amount"}, verr.Fields)

	list, err := f.debts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Ceros a la derecha no agregan precisión.
	created, err := f.debts.Create(ctx, dto.DebtRequest{SupplierID: itoa(s.ID), Amount: "12.340", DueDate: "2025-01-01"})
	require.NoError(t, err)
	got, err := f.debts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.34", got.Amount)
	assert.Equal(t, created, got)
}

func TestDebt_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.debts.Create(context.Background(), dto.DebtRequest{SupplierID: "77", Amount: "10", DueDate: "2025-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestInvoice_SinArchivo(t *testing.T) {
	f := newFixture(t)
	s := f.acme(t)

	inv := f.invoice(t, s.ID, "1200.5")
	assert.Empty(t, inv.FilePath)
	assert.False(t, inv.HasFile)

	got, err := f.invoices.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv, got)
	assert.Equal(t, "1200.50", got.Amount)

	_, err = f.invoices.FilePath(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoice_ConArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	inv, err := f.invoices.Create(ctx, dto.InvoiceRequest{
		SupplierID:   itoa(s.ID),
		Amount:       "99.99",
		IssueDate:    "2025-03-01",
		DueDate:      "2025-03-31",
		PaymentTerms: "contado",
	}, &payables.Attachment{Name: "factura-acme.pdf", Content: strings.NewReader("%PDF-1.4")})
	require.NoError(t, err)
	assert.True(t, inv.HasFile)
	assert.Contains(t, inv.FilePath, "factura-acme.pdf")

	path, err := f.invoices.FilePath(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.uploadDir, "factura-acme.pdf"), path)
}

func TestInvoice_UpdateSinArchivoConservaReferencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)
	in := dto.InvoiceRequest{SupplierID: itoa(s.ID), Amount: "10", IssueDate: "2025-01-01", DueDate: "2025-01-31", PaymentTerms: "30 días"}

	inv, err := f.invoices.Create(ctx, in, &payables.Attachment{Name: "a.pdf", Content: strings.NewReader("a")})
	require.NoError(t, err)

	in.Amount = "20"
	updated, err := f.invoices.Update(ctx, inv.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, inv.FilePath, updated.FilePath)
	assert.Equal(t, "20.00", updated.Amount)

	updated, err = f.invoices.Update(ctx, inv.ID, in, &payables.Attachment{Name: "b.pdf", Content: strings.NewReader("b")})
	require.NoError(t, err)
	assert.Contains(t, updated.FilePath, "b.pdf")
}

func TestInvoice_ErrorAlGuardarNoInserta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	files := new(mockFileStorage)
	files.On("Stage", mock.Anything, "x.pdf", mock.Anything).Return(nil, errors.New("disco lleno"))
	uc := payables.NewInvoiceUseCase(f.repos.Invoices, files)

	_, err := uc.Create(ctx, dto.InvoiceRequest{
		SupplierID: itoa(s.ID), Amount: "10", IssueDate: "2025-01-01", DueDate: "2025-01-31", PaymentTerms: "contado",
	}, &payables.Attachment{Name: "x.pdf", Content: strings.NewReader("x")})
	require.Error(t, err)
	files.AssertExpectations(t)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoice_CreateFallidoNoTocaAdjuntoExistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)
	in := dto.InvoiceRequest{SupplierID: itoa(s.ID), Amount: "10", IssueDate: "2025-01-01", DueDate: "2025-01-31", PaymentTerms: "contado"}

	first, err := f.invoices.Create(ctx, in, &payables.Attachment{Name: "scan.pdf", Content: strings.NewReader("ORIGINAL")})
	require.NoError(t, err)

	in.SupplierID = "999"
	_, err = f.invoices.Create(ctx, in, &payables.Attachment{Name: "scan.pdf", Content: strings.NewReader("OTRO")})
	require.ErrorIs(t, err, domain.ErrInvalidReference)

	data, err := os.ReadFile(first.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(data))

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales ni archivos huérfanos")
}

func TestPayment_UpdateFallidoNoTocaAdjuntoExistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)
	inv := f.invoice(t, s.ID, "100")
	in := dto.PaymentRequest{InvoiceID: itoa(inv.ID), Amount: "25", Date: "2025-01-10", Method: "efectivo"}

	p, err := f.payments.Create(ctx, in, &payables.Attachment{Name: "recibo.jpg", Content: strings.NewReader("ORIGINAL")})
	require.NoError(t, err)

	in.InvoiceID = "999"
	_, err = f.payments.Update(ctx, p.ID, in, &payables.Attachment{Name: "recibo.jpg", Content: strings.NewReader("OTRO")})
	require.ErrorIs(t, err, domain.ErrInvalidReference)

	data, err := os.ReadFile(p.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(data))

	got, err := f.payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.InvoiceID)
}

func TestInvoice_ValidacionNoTocaAlmacenamiento(t *testing.T) {
	f := newFixture(t)
	files := new(mockFileStorage)
	uc := payables.NewInvoiceUseCase(f.repos.Invoices, files)

	_, err := uc.Create(context.Background(), dto.InvoiceRequest{Amount: "10"},
		&payables.Attachment{Name: "x.pdf", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	files.AssertNotCalled(t, "Stage", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoice_DeleteConPagosBloqueado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)
	inv := f.invoice(t, s.ID, "100")

	_, err := f.payments.Create(ctx, dto.PaymentRequest{InvoiceID: itoa(inv.ID), Amount: "40", Date: "2025-01-10", Method: "transferencia"}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.invoices.Delete(ctx, inv.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.suppliers.Delete(ctx, s.ID), domain.ErrConflict)
}

func TestPayment_CRUDConComprobante(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)
	inv := f.invoice(t, s.ID, "100")

	p, err := f.payments.Create(ctx, dto.PaymentRequest{InvoiceID: itoa(inv.ID), Amount: "25", Date: "2025-01-10", Method: "efectivo"},
		&payables.Attachment{Name: "recibo.jpg", Content: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.Contains(t, p.FilePath, "recibo.jpg")

	byInvoice, err := f.payments.ListByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, byInvoice, 1)
	assert.Equal(t, "25.00", byInvoice[0].Amount)

	_, err = f.payments.Update(ctx, p.ID, dto.PaymentRequest{InvoiceID: itoa(inv.ID), Amount: "30", Date: "2025-01-11", Method: "cheque"}, nil)
	require.NoError(t, err)
	got, err := f.payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "cheque", got.Method)
	assert.Equal(t, p.FilePath, got.FilePath)

	require.NoError(t, f.payments.Delete(ctx, p.ID))
	_, err = f.payments.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayment_FacturaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.payments.Create(context.Background(), dto.PaymentRequest{InvoiceID: "5", Amount: "1", Date: "2025-01-01", Method: "efectivo"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

type captureRenderer struct {
	got *dto.SupplierStatement
}

func (r *captureRenderer) RenderStatement(st *dto.SupplierStatement) ([]byte, error) {
	r.got = st
	return []byte("%PDF"), nil
}

func TestStatement_Totales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.acme(t)

	_, err := f.debts.Create(ctx, dto.DebtRequest{SupplierID: itoa(s.ID), Amount: "500.00", DueDate: "2025-01-01"})
	require.NoError(t, err)
	inv1 := f.invoice(t, s.ID, "300")
	f.invoice(t, s.ID, "200")
	for _, amount := range []string{"100", "50.50"} {
		_, err := f.payments.Create(ctx, dto.PaymentRequest{InvoiceID: itoa(inv1.ID), Amount: amount, Date: "2025-01-15", Method: "efectivo"}, nil)
		require.NoError(t, err)
	}

	renderer := &captureRenderer{}
	uc := payables.NewStatementUseCase(f.tx, renderer)
	pdf, err := uc.Render(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)

	st := renderer.got
	require.NotNil(t, st)
	assert.Equal(t, "Acme", st.Supplier.Name)
	assert.Len(t, st.Debts, 1)
	require.Len(t, st.Invoices, 2)
	assert.True(t, st.Invoices[0].Paid.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, st.Invoices[0].Balance.Equal(decimal.RequireFromString("149.50")))
	assert.True(t, st.Invoices[1].Paid.IsZero())
	assert.True(t, st.TotalDebts.Equal(decimal.NewFromInt(500)))
	assert.True(t, st.TotalInvoice.Equal(decimal.NewFromInt(500)))
	assert.True(t, st.TotalPaid.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, st.Balance.Equal(decimal.RequireFromString("849.50")))
	assert.Equal(t, time.Now().Format("2006-01-02"), st.GeneratedAt)
}

func TestStatement_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	uc := payables.NewStatementUseCase(f.tx, &captureRenderer{})
	_, err := uc.Build(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
