// Package payables contiene los casos de uso de cuentas por pagar:
// proveedores, deudas, facturas, pagos y el estado de cuenta por proveedor.
package payables

import (
	"context"
	"io"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// FileStorage prepara un adjunto sin tocar su destino final. El caso de uso
// confirma el archivo solo si la fila se escribió.
type FileStorage interface {
	Stage(ctx context.Context, name string, content io.Reader) (StagedFile, error)
}

// StagedFile adjunto pendiente. Path es la ruta que se guarda en la fila.
type StagedFile interface {
	Path() string
	Commit() error
	Discard() error
}

// Attachment archivo opcional que acompaña a una factura o un pago.
type Attachment struct {
	Name    string
	Content io.Reader
}

// TxRunner ejecuta fn con repos atados a una misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// StatementRenderer genera el documento (PDF) del estado de cuenta.
type StatementRenderer interface {
	RenderStatement(st *dto.SupplierStatement) ([]byte, error)
}
