package repository

// Repositories agrupa los puertos de persistencia atados a una misma conexión o transacción.
type Repositories struct {
	Users     UserRepository
	Suppliers SupplierRepository
	Debts     DebtRepository
	Invoices  InvoiceRepository
	Payments  PaymentRepository
}
