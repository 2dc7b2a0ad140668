package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, invoice_id, amount, date, method, file_path`

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, amount, date, method, file_path)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.InvoiceID, p.Amount, p.Date, p.Method, p.FilePath).Scan(&p.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	list, err := r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List lista todos los pagos.
func (r *PaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

// ListByInvoice lista los pagos de una factura.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]*entity.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY id`, invoiceID)
}

// Update actualiza un pago.
func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	query := `UPDATE payments SET invoice_id = $2, amount = $3, date = $4, method = $5, file_path = $6 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.InvoiceID, p.Amount, p.Date, p.Method, p.FilePath)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update payment: %w", err)
	}
	return expectOneRow(tag)
}

// Delete elimina un pago por ID.
func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectOneRow(tag)
}

func (r *PaymentRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Payment, error) {
		var p entity.Payment
		err := row.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Date, &p.Method, &p.FilePath)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return list, nil
}
