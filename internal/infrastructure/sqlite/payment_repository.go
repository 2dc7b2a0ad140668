package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, invoice_id, amount, date, method, file_path`

// PaymentRepo implementación de PaymentRepository sobre SQLite.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago; factura inexistente -> domain.ErrInvalidReference.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, amount, date, method, file_path)
		VALUES (?, ?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		p.InvoiceID, p.Amount.String(), formatDate(p.Date), p.Method, p.FilePath,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID; (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	list, err := scanPayments(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve todos los pagos.
func (r *PaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return scanPayments(rows)
}

// ListByInvoice devuelve los pagos de una factura.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Payment, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = ? ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments by invoice: %w", err)
	}
	return scanPayments(rows)
}

// Update sobrescribe todos los campos del pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `UPDATE payments SET invoice_id = ?, amount = ?, date = ?, method = ?, file_path = ? WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		p.InvoiceID, p.Amount.String(), formatDate(p.Date), p.Method, p.FilePath, p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update payment: %w", err)
	}
	return expectOneRow(res, "update payment")
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectOneRow(res, "delete payment")
}

func scanPayments(rows *sql.Rows) ([]*entity.Payment, error) {
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		var (
			p    entity.Payment
			date string
		)
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &date, &p.Method, &p.FilePath); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		t, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		p.Date = t
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return list, nil
}
