// Package filestore persiste los archivos adjuntos de facturas y pagos en disco.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
)

// ErrTooLarge el archivo supera el tamaño máximo configurado.
var ErrTooLarge = fmt.Errorf("archivo demasiado grande: %w", domain.ErrInvalidInput)

// Local guarda los adjuntos bajo un directorio raíz con su nombre original.
// Un archivo con el mismo nombre se sobrescribe.
type Local struct {
	root     string
	maxBytes int64
}

// NewLocal crea el directorio raíz si no existe. maxBytes <= 0 desactiva el límite.
func NewLocal(root string, maxBytes int64) (*Local, error) {
	if root == "" {
		return nil, errors.New("filestore: directorio raíz vacío")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w", root, err)
	}
	return &Local{root: root, maxBytes: maxBytes}, nil
}

// Root devuelve el directorio raíz.
func (s *Local) Root() string {
	return s.root
}

// Save escribe content en root/<nombre base> y devuelve esa ruta.
func (s *Local) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	staged, err := s.Stage(ctx, name, content)
	if err != nil {
		return "", err
	}
	if err := staged.Commit(); err != nil {
		return "", err
	}
	return staged.Path(), nil
}

// Stage escribe content en un archivo temporal dentro de root. El destino final
// (root/<nombre base>) no se toca hasta Commit; Discard borra el temporal.
func (s *Local) Stage(ctx context.Context, name string, content io.Reader) (payables.StagedFile, error) {
	base, err := sanitize(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("filestore: temporal: %w", err)
	}
	staged := &stagedFile{tmp: tmp.Name(), dst: filepath.Join(s.root, base)}

	src := content
	if s.maxBytes > 0 {
		src = io.LimitReader(content, s.maxBytes+1)
	}
	n, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = staged.Discard()
		return nil, fmt.Errorf("filestore: escribir %s: %w", base, err)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		_ = staged.Discard()
		return nil, ErrTooLarge
	}
	return staged, nil
}

type stagedFile struct {
	tmp  string
	dst  string
	done bool
}

func (f *stagedFile) Path() string {
	return f.dst
}

// Commit mueve el temporal a su nombre final con un rename.
func (f *stagedFile) Commit() error {
	if f.done {
		return nil
	}
	if err := os.Rename(f.tmp, f.dst); err != nil {
		_ = f.Discard()
		return fmt.Errorf("filestore: mover %s: %w", filepath.Base(f.dst), err)
	}
	f.done = true
	return nil
}

func (f *stagedFile) Discard() error {
	if f.done {
		return nil
	}
	f.done = true
	if err := os.Remove(f.tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitize reduce el nombre a su componente base para que no salga de root.
func sanitize(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." || strings.HasPrefix(base, ".upload-") {
		return "", &domain.ValidationError{Fields: []string{"file"}}
	}
	return base, nil
}
