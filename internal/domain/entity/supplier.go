package entity

// Supplier representa un proveedor al que se le debe dinero.
type Supplier struct {
	ID      int64
	Name    string
	Address string
	Phone   string
	Email   string
}
