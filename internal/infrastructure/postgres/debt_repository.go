package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

const debtColumns = `id, supplier_id, amount, due_date, description`

// DebtRepo implementación de DebtRepository sobre PostgreSQL.
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador.
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

// Create persiste una deuda.
func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	query := `
		INSERT INTO debts (supplier_id, amount, due_date, description)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.q.QueryRow(ctx, query, d.SupplierID, d.Amount, d.DueDate, d.Description).Scan(&d.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

// GetByID obtiene una deuda por ID.
func (r *DebtRepo) GetByID(ctx context.Context, id int64) (*entity.Debt, error) {
	list, err := r.query(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List lista todas las deudas.
func (r *DebtRepo) List(ctx context.Context) ([]*entity.Debt, error) {
	return r.query(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY id`)
}

// ListBySupplier lista las deudas de un proveedor.
func (r *DebtRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Debt, error) {
	return r.query(ctx, `SELECT `+debtColumns+` FROM debts WHERE supplier_id = $1 ORDER BY id`, supplierID)
}

// Update actualiza una deuda.
func (r *DebtRepo) Update(ctx context.Context, d *entity.Debt) error {
	query := `UPDATE debts SET supplier_id = $2, amount = $3, due_date = $4, description = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.SupplierID, d.Amount, d.DueDate, d.Description)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update debt: %w", err)
	}
	return expectOneRow(tag)
}

// Delete elimina una deuda por ID.
func (r *DebtRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return expectOneRow(tag)
}

func (r *DebtRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Debt, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Debt, error) {
		var d entity.Debt
		err := row.Scan(&d.ID, &d.SupplierID, &d.Amount, &d.DueDate, &d.Description)
		return &d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan debt: %w", err)
	}
	return list, nil
}
