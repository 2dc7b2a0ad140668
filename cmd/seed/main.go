// seed crea el esquema si no existe e inserta los usuarios iniciales admin y user.
// Ejecutarlo varias veces no duplica usuarios.
//
// Uso: go run ./cmd/seed [proveedores.csv]
// El CSV opcional (name,address,phone,email con encabezado, UTF-8 o ISO-8859-1)
// carga proveedores iniciales. Los nombres que ya existen se omiten, así que
// repetir la carga no duplica proveedores.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/auth"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/infrastructure/datastore"
	"github.com/jhoicas/cuentas-por-pagar/pkg/config"
	"github.com/jhoicas/cuentas-por-pagar/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx := context.Background()
	store, err := datastore.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer func() { _ = store.Close() }()

	created, err := auth.SeedUsers(ctx, store.Repos.Users, auth.DefaultSeedUsers(cfg.Seed))
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar usuarios")
	}
	log.Info().Int("nuevos", created).Str("driver", store.Driver).Msg("usuarios iniciales listos")

	if len(os.Args) < 2 {
		return
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV de proveedores")
	}
	defer f.Close()

	rows, err := readSuppliers(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", os.Args[1]).Msg("leer CSV de proveedores")
	}
	added, skipped, err := importSuppliers(ctx, payables.NewSupplierUseCase(store.Repos.Suppliers), rows)
	if err != nil {
		log.Fatal().Err(err).Msg("crear proveedores")
	}
	log.Info().Int("nuevos", added).Int("existentes", skipped).Msg("proveedores cargados")
}

// importSuppliers crea los proveedores cuyo nombre aún no existe.
func importSuppliers(ctx context.Context, uc *payables.SupplierUseCase, rows []dto.SupplierRequest) (added, skipped int, err error) {
	existing, err := uc.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]bool, len(existing)+len(rows))
	for _, s := range existing {
		seen[s.Name] = true
	}
	for i, in := range rows {
		if seen[in.Name] {
			skipped++
			continue
		}
		if _, err := uc.Create(ctx, in); err != nil {
			return added, skipped, fmt.Errorf("fila %d: %w", i+2, err)
		}
		seen[in.Name] = true
		added++
	}
	return added, skipped, nil
}

// readSuppliers lee name,address,phone,email saltando el encabezado.
// Si el contenido no es UTF-8 válido se decodifica como ISO-8859-1.
func readSuppliers(r io.Reader) ([]dto.SupplierRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("CSV vacío")
	}

	out := make([]dto.SupplierRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 1 || strings.TrimSpace(rec[0]) == "" {
			return nil, fmt.Errorf("fila %d: name es requerido", i+2)
		}
		out = append(out, dto.SupplierRequest{
			Name:    strings.TrimSpace(rec[0]),
			Address: column(rec, 1),
			Phone:   column(rec, 2),
			Email:   column(rec, 3),
		})
	}
	return out, nil
}

func column(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}
