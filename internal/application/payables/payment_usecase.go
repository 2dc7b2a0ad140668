package payables

import (
	"context"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/entity"
	"github.com/jhoicas/cuentas-por-pagar/internal/domain/repository"
)

// PaymentUseCase casos de uso para pagos contra facturas.
type PaymentUseCase struct {
	repo  repository.PaymentRepository
	files FileStorage
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repo repository.PaymentRepository, files FileStorage) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, files: files}
}

// Create registra un pago con su comprobante opcional.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.PaymentRequest, file *Attachment) (*dto.PaymentResponse, error) {
	p, err := paymentFromRequest(in)
	if err != nil {
		return nil, err
	}
	staged, err := stageAttachment(ctx, uc.files, file)
	if err != nil {
		return nil, err
	}
	if staged != nil {
		p.FilePath = staged.Path()
	}
	if err := settleAttachment(staged, uc.repo.Create(ctx, p)); err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// Update sobrescribe todos los campos. Sin adjunto nuevo se conserva la referencia guardada.
func (uc *PaymentUseCase) Update(ctx context.Context, id int64, in dto.PaymentRequest, file *Attachment) (*dto.PaymentResponse, error) {
	p, err := paymentFromRequest(in)
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
	p.ID = id
	p.FilePath = current.FilePath
	staged, err := stageAttachment(ctx, uc.files, file)
	if err != nil {
		return nil, err
	}
	if staged != nil {
		p.FilePath = staged.Path()
	}
	if err := settleAttachment(staged, uc.repo.Update(ctx, p)); err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// Delete elimina un pago.
func (uc *PaymentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID obtiene un pago.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id int64) (*dto.PaymentResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToPaymentResponse(p), nil
}

// List lista todos los pagos.
func (uc *PaymentUseCase) List(ctx context.Context) ([]*dto.PaymentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

// ListByInvoice lista los pagos de una factura.
func (uc *PaymentUseCase) ListByInvoice(ctx context.Context, invoiceID int64) ([]*dto.PaymentResponse, error) {
	list, err := uc.repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(list), nil
}

// FilePath devuelve la ruta del comprobante; domain.ErrNotFound si no hay.
func (uc *PaymentUseCase) FilePath(ctx context.Context, id int64) (string, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if p == nil || p.FilePath == "" {
		return "", domain.ErrNotFound
	}
	return p.FilePath, nil
}

func paymentFromRequest(in dto.PaymentRequest) (*entity.Payment, error) {
	var fp fieldParser
	p := &entity.Payment{
		InvoiceID: fp.id("invoice_id", in.InvoiceID),
		Amount:    fp.amount("amount", in.Amount),
		Date:      fp.date("date", in.Date),
		Method:    fp.required("method", in.Method),
	}
	if err := fp.err(); err != nil {
		return nil, err
	}
	return p, nil
}

// ToPaymentResponse convierte la entidad a su salida.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    formatAmount(p.Amount),
		Date:      formatDate(p.Date),
		Method:    p.Method,
		FilePath:  p.FilePath,
		HasFile:   p.FilePath != "",
	}
}

func toPaymentResponses(list []*entity.Payment) []*dto.PaymentResponse {
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPaymentResponse(p))
	}
	return out
}
