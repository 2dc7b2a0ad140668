package http

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
)

// formAttachment abre el archivo multipart "file" si la petición lo trae.
// release siempre es invocable.
func formAttachment(c *fiber.Ctx) (att *payables.Attachment, release func(), err error) {
	release = func() {}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, release, nil
	}
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return nil, release, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, release, err
	}
	return &payables.Attachment{Name: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}

// sendStoredFile descarga un adjunto guardado; 404 si ya no está en disco.
func sendStoredFile(c *fiber.Ctx, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return writeError(c, domain.ErrNotFound)
		}
		return writeError(c, err)
	}
	return c.Download(path, filepath.Base(path))
}

// queryID lee un filtro opcional ?name=<id>; ok es false si no viene.
func queryID(c *fiber.Ctx, name string) (id int64, ok bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, &domain.ValidationError{Fields: []string{name}}
	}
	return id, true, nil
}
