package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

const debtColumns = `id, supplier_id, amount, due_date, description`

// DebtRepo implementación de DebtRepository sobre SQLite.
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador.
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

// Create persiste una deuda; proveedor inexistente -> domain.ErrInvalidReference.
func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	query := `
		INSERT INTO debts (supplier_id, amount, due_date, description)
		VALUES (?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowContext(ctx, query, d.SupplierID, d.Amount.String(), formatDate(d.DueDate), d.Description).Scan(&d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

// GetByID obtiene una deuda por ID; (nil, nil) si no existe.
func (r *DebtRepo) GetByID(ctx context.Context, id int64) (*entity.Debt, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get debt: %w", err)
	}
	list, err := scanDebts(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve todas las deudas.
func (r *DebtRepo) List(ctx context.Context) ([]*entity.Debt, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return scanDebts(rows)
}

// ListBySupplier devuelve las deudas de un proveedor.
func (r *DebtRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Debt, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE supplier_id = ? ORDER BY id`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list debts by supplier: %w", err)
	}
	return scanDebts(rows)
}

// Update sobrescribe todos los campos de la deuda.
func (r *DebtRepo) Update(ctx context.Context, d *entity.Debt) error {
	query := `UPDATE debts SET supplier_id = ?, amount = ?, due_date = ?, description = ? WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query, d.SupplierID, d.Amount.String(), formatDate(d.DueDate), d.Description, d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update debt: %w", err)
	}
	return expectOneRow(res, "update debt")
}

// Delete elimina una deuda por ID.
func (r *DebtRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return expectOneRow(res, "delete debt")
}

func scanDebts(rows *sql.Rows) ([]*entity.Debt, error) {
	defer rows.Close()
	list := make([]*entity.Debt, 0)
	for rows.Next() {
		var (
			d   entity.Debt
			due string
		)
		if err := rows.Scan(&d.ID, &d.SupplierID, &d.Amount, &due, &d.Description); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		t, err := parseDate(due)
		if err != nil {
			return nil, err
		}
		d.DueDate = t
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debts: %w", err)
	}
	return list, nil
}
