package dto

import "github.com/shopspring/decimal"

// StatementInvoiceLine factura dentro del estado de cuenta con lo abonado y el saldo.
type StatementInvoiceLine struct {
	Invoice InvoiceResponse
	Paid    decimal.Decimal
	Balance decimal.Decimal
}

// SupplierStatement estado de cuenta de un proveedor (GET /api/suppliers/:id/statement).
type SupplierStatement struct {
	Supplier     SupplierResponse
	GeneratedAt  string // YYYY-MM-DD
	Debts        []DebtResponse
	Invoices     []StatementInvoiceLine
	TotalDebts   decimal.Decimal
	TotalInvoice decimal.Decimal
	TotalPaid    decimal.Decimal
	Balance      decimal.Decimal // TotalDebts + TotalInvoice - TotalPaid
}
