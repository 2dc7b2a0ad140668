package payables

import (
	"context"
	"fmt"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// InvoiceUseCase casos de uso para facturas de proveedores.
type InvoiceUseCase struct {
	repo  repository.InvoiceRepository
	files FileStorage
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, files FileStorage) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, files: files}
}

// Create registra una factura y, si viene, guarda el adjunto con su nombre original.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest, file *Attachment) (*dto.InvoiceResponse, error) {
	inv, err := invoiceFromRequest(in)
	if err != nil {
		return nil, err
	}
	staged, err := stageAttachment(ctx, uc.files, file)
	if err != nil {
		return nil, err
	}
	if staged != nil {
		inv.FilePath = staged.Path()
	}
	if err := settleAttachment(staged, uc.repo.Create(ctx, inv)); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Update sobrescribe todos los campos. Sin adjunto nuevo se conserva la referencia guardada.
func (uc *InvoiceUseCase) Update(ctx context.Context, id int64, in dto.InvoiceRequest, file *Attachment) (*dto.InvoiceResponse, error) {
	inv, err := invoiceFromRequest(in)
	if err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	inv.ID = id
	inv.FilePath = current.FilePath
	staged, err := stageAttachment(ctx, uc.files, file)
	if err != nil {
		return nil, err
	}
	if staged != nil {
		inv.FilePath = staged.Path()
	}
	if err := settleAttachment(staged, uc.repo.Update(ctx, inv)); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Delete elimina una factura sin pagos. El adjunto queda en disco.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene una factura.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// List lista todas las facturas.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// ListBySupplier lista las facturas de un proveedor.
func (uc *InvoiceUseCase) ListBySupplier(ctx context.Context, supplierID int64) ([]*dto.InvoiceResponse, error) {
	list, err := uc.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// FilePath devuelve la ruta del adjunto; domain.ErrNotFound si la factura no existe o no tiene archivo.
func (uc *InvoiceUseCase) FilePath(ctx context.Context, id int64) (string, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if inv == nil || inv.FilePath == "" {
		return "", domain.ErrNotFound
	}
	return inv.FilePath, nil
}

func invoiceFromRequest(in dto.InvoiceRequest) (*entity.Invoice, error) {
	var p fieldParser
	inv := &entity.Invoice{
		SupplierID:   p.id("supplier_id", in.SupplierID),
		Amount:       p.amount("amount", in.Amount),
		IssueDate:    p.date("issue_date", in.IssueDate),
		DueDate:      p.date("due_date", in.DueDate),
		PaymentTerms: p.required("payment_terms", in.PaymentTerms),
	}
	if err := p.err(); err != nil {
		return nil, err
	}
	return inv, nil
}

// stageAttachment devuelve nil sin adjunto.
func stageAttachment(ctx context.Context, files FileStorage, file *Attachment) (StagedFile, error) {
	if file == nil || file.Content == nil {
		return nil, nil
	}
	if files == nil {
		return nil, fmt.Errorf("adjunto %q: almacenamiento no configurado", file.Name)
	}
	staged, err := files.Stage(ctx, file.Name, file.Content)
	if err != nil {
		return nil, fmt.Errorf("guardar adjunto %q: %w", file.Name, err)
	}
	return staged, nil
}

// settleAttachment confirma el adjunto si la fila se escribió y lo descarta si no.
// Un error de escritura deja intacto cualquier archivo previo con el mismo nombre.
func settleAttachment(staged StagedFile, writeErr error) error {
	if staged == nil {
		return writeErr
	}
	if writeErr != nil {
		_ = staged.Discard()
		return writeErr
	}
	if err := staged.Commit(); err != nil {
		return fmt.Errorf("confirmar adjunto: %w", err)
	}
	return nil
}

// ToInvoiceResponse convierte la entidad a su salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:           inv.ID,
		SupplierID:   inv.SupplierID,
		Amount:       formatAmount(inv.Amount),
		IssueDate:    formatDate(inv.IssueDate),
		DueDate:      formatDate(inv.DueDate),
		PaymentTerms: inv.PaymentTerms,
		FilePath:     inv.FilePath,
		HasFile:      inv.FilePath != "",
	}
}

func toInvoiceResponses(list []*entity.Invoice) []*dto.InvoiceResponse {
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out
}
