package entity

import "time"

// Supplier representa un proveedor de insumos. NIT único por proveedor.
type Supplier struct {
	ID        string
	NIT       string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
