package dto

// Los requests llevan todos los campos como texto, tal como llegan del formulario;
// el parseo y la validación ocurren en los casos de uso.

// SupplierRequest body para POST/PUT /api/suppliers.
type SupplierRequest struct {
	Name    string `json:"name" form:"name"`
	Address string `json:"address" form:"address"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// DebtRequest body para POST/PUT /api/debts.
type DebtRequest struct {
	SupplierID  string `json:"supplier_id" form:"supplier_id"`
	Amount      string `json:"amount" form:"amount"`     // decimal positivo, p. ej. "500.00"
	DueDate     string `json:"due_date" form:"due_date"` // YYYY-MM-DD
	Description string `json:"description" form:"description"`
}

// DebtResponse deuda en respuestas.
type DebtResponse struct {
	ID          int64  `json:"id"`
	SupplierID  int64  `json:"supplier_id"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	Description string `json:"description"`
}

// InvoiceRequest body para POST/PUT /api/invoices. El adjunto viaja aparte (campo multipart "file").
type InvoiceRequest struct {
	SupplierID   string `json:"supplier_id" form:"supplier_id"`
	Amount       string `json:"amount" form:"amount"`
	IssueDate    string `json:"issue_date" form:"issue_date"`
	DueDate      string `json:"due_date" form:"due_date"`
	PaymentTerms string `json:"payment_terms" form:"payment_terms"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID           int64  `json:"id"`
	SupplierID   int64  `json:"supplier_id"`
	Amount       string `json:"amount"`
	IssueDate    string `json:"issue_date"`
	DueDate      string `json:"due_date"`
	PaymentTerms string `json:"payment_terms"`
	FilePath     string `json:"file_path"`
	HasFile      bool   `json:"has_file"`
}

// PaymentRequest body para POST/PUT /api/payments.
type PaymentRequest struct {
	InvoiceID string `json:"invoice_id" form:"invoice_id"`
	Amount    string `json:"amount" form:"amount"`
	Date      string `json:"date" form:"date"`
	Method    string `json:"method" form:"method"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID        int64  `json:"id"`
	InvoiceID int64  `json:"invoice_id"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Method    string `json:"method"`
	FilePath  string `json:"file_path"`
	HasFile   bool   `json:"has_file"`
}
