package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment registra un abono contra una factura.
type Payment struct {
	ID        int64
	InvoiceID int64
	Amount    decimal.Decimal
	Date      time.Time
	Method    string // efectivo, transferencia, cheque...
	FilePath  string
}
