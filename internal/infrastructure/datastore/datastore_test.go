package datastore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/datastore"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "cxp.db")

	st, err := datastore.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	assert.Equal(t, config.DriverSQLite, st.Driver)

	err = st.Tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.Suppliers.Create(ctx, &entity.Supplier{Name: "Acme"})
	})
	require.NoError(t, err)

	list, err := st.Repos.Suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := datastore.Open(context.Background(), config.DBConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestClose_StoreNil(t *testing.T) {
	var st *datastore.Store
	assert.NoError(t, st.Close())
}
