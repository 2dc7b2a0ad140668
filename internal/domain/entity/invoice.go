package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la factura recibida de un proveedor.
type Invoice struct {
	ID           int64
	SupplierID   int64
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      time.Time
	PaymentTerms string
	FilePath     string // vacío si no se adjuntó archivo
}
