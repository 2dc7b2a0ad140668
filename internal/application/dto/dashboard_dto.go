package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Saldos globales de cuentas por pagar y vencimientos con saldo pendiente.
type DashboardSummaryDTO struct {
	Suppliers     int    `json:"suppliers"`
	TotalDebts    string `json:"total_debts"`
	TotalInvoiced string `json:"total_invoiced"`
	TotalPaid     string `json:"total_paid"`
	Outstanding   string `json:"outstanding"` // deudas + facturado - pagado

	Overdue []DueItemDTO `json:"overdue"`  // vencidos antes de hoy
	DueSoon []DueItemDTO `json:"due_soon"` // vencen dentro de DueSoonDays

	DueSoonDays int    `json:"due_soon_days"`
	DateLabel   string `json:"date_label"` // ej: "Octubre 2026"
}

// DueItemDTO deuda o factura con saldo y su vencimiento.
type DueItemDTO struct {
	Kind         string `json:"kind"` // "debt" | "invoice"
	ID           int64  `json:"id"`
	SupplierID   int64  `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	DueDate      string `json:"due_date"`
	Balance      string `json:"balance"`
}
