package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secreto-de-prueba")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "./uploads", cfg.Storage.UploadDir)
	assert.Equal(t, 120*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "cxp_session", cfg.Session.CookieName)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "admin123", cfg.Seed.AdminPassword)
	assert.Equal(t, "user123", cfg.Seed.UserPassword)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SESSION_SECRET", "otro-secreto")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/cxp.db")
	t.Setenv("UPLOAD_DIR", "/var/lib/cxp/uploads")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/cxp.db", cfg.DB.SQLitePath)
	assert.Equal(t, "/var/lib/cxp/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "otro-secreto", cfg.Session.Secret)
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidate_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{
		DB:      config.DBConfig{Driver: "mysql"},
		Session: config.SessionConfig{Secret: "x", Expiration: 10},
		Storage: config.StorageConfig{UploadDir: "./uploads"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "cxp", Password: "p@ss:word", DBName: "cxp", SSLMode: "disable"}
	assert.Equal(t, "postgres://cxp:p%40ss%3Aword@db:5432/cxp?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
