package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, supplier_id, amount, issue_date, due_date, payment_terms, file_path`

// InvoiceRepo implementación de InvoiceRepository sobre SQLite.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (supplier_id, amount, issue_date, due_date, payment_terms, file_path)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		inv.SupplierID, inv.Amount.String(), formatDate(inv.IssueDate), formatDate(inv.DueDate),
		inv.PaymentTerms, inv.FilePath,
	).Scan(&inv.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID; (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	list, err := scanInvoices(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve todas las facturas.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return scanInvoices(rows)
}

// ListBySupplier devuelve las facturas de un proveedor.
func (r *InvoiceRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Invoice, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE supplier_id = ? ORDER BY id`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by supplier: %w", err)
	}
	return scanInvoices(rows)
}

// Update sobrescribe todos los campos de la factura, incluida la referencia al archivo.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET supplier_id = ?, amount = ?, issue_date = ?, due_date = ?, payment_terms = ?, file_path = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		inv.SupplierID, inv.Amount.String(), formatDate(inv.IssueDate), formatDate(inv.DueDate),
		inv.PaymentTerms, inv.FilePath, inv.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return expectOneRow(res, "update invoice")
}

// Delete elimina una factura. Con pagos asociados devuelve domain.ErrConflict.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	return expectOneRow(res, "delete invoice")
}

func scanInvoices(rows *sql.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		var (
			inv         entity.Invoice
			issued, due string
		)
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &inv.Amount, &issued, &due, &inv.PaymentTerms, &inv.FilePath); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		var err error
		if inv.IssueDate, err = parseDate(issued); err != nil {
			return nil, err
		}
		if inv.DueDate, err = parseDate(due); err != nil {
			return nil, err
		}
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return list, nil
}
