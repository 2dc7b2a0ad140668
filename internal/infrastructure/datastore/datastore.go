// Package datastore abre el backend de persistencia elegido por DB_DRIVER y
// expone sus repositorios con la misma forma para ambos motores.
package datastore

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/postgres"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/sqlite"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
)

// TxRunner ejecuta fn con repositorios atados a una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Store backend abierto y con el esquema aplicado.
type Store struct {
	Driver string
	Repos  repository.Repositories
	Tx     TxRunner
	close  func() error
}

// Close libera las conexiones.
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Open conecta según cfg.Driver y aplica el esquema (idempotente).
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.Driver,
			Repos:  sqlite.NewRepositories(db),
			Tx:     sqlite.NewTxRunner(db),
			close:  db.Close,
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver: cfg.Driver,
			Repos:  postgres.NewRepositories(pool),
			Tx:     postgres.NewTxRunner(pool),
			close:  func() error { pool.Close(); return nil },
		}, nil
	default:
		return nil, fmt.Errorf("datastore: driver desconocido %q", cfg.Driver)
	}
}
