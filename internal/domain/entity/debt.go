package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt es una obligación por pagar a un proveedor, gestionada solo por admin.
// Distinta de Invoice: no tiene documento ni pagos asociados.
type Debt struct {
	ID          int64
	SupplierID  int64
	Amount      decimal.Decimal
	DueDate     time.Time
	Description string
}
