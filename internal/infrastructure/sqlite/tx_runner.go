package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// NewRepositories construye todos los repos sobre el mismo Querier (db o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Users:     NewUserRepository(q),
		Suppliers: NewSupplierRepository(q),
		Debts:     NewDebtRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Payments:  NewPaymentRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
