package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, supplier_id, amount, issue_date, due_date, payment_terms, file_path`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
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
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.SupplierID, inv.Amount, inv.IssueDate, inv.DueDate, inv.PaymentTerms, inv.FilePath,
	).Scan(&inv.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	list, err := r.query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List lista todas las facturas.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	return r.query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY id`)
}

// ListBySupplier lista las facturas de un proveedor.
func (r *InvoiceRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Invoice, error) {
	return r.query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE supplier_id = $1 ORDER BY id`, supplierID)
}

// Update actualiza una factura.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET supplier_id = $2, amount = $3, issue_date = $4, due_date = $5, payment_terms = $6, file_path = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.SupplierID, inv.Amount, inv.IssueDate, inv.DueDate, inv.PaymentTerms, inv.FilePath,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return expectOneRow(tag)
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	return expectOneRow(tag)
}

func (r *InvoiceRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Invoice, error) {
		var inv entity.Invoice
		err := row.Scan(&inv.ID, &inv.SupplierID, &inv.Amount, &inv.IssueDate, &inv.DueDate, &inv.PaymentTerms, &inv.FilePath)
		return &inv, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return list, nil
}
