package entity

import "time"

// Supplier representa un proveedor con sus datos de contacto para reposición.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductSupplier vincula un producto con su proveedor. Primary marca al
// proveedor por defecto para reórdenes; el modelo asume uno solo por producto
// pero la tabla deja espacio para más.
type ProductSupplier struct {
	ProductID  string
	SupplierID string
	Primary    bool
	CreatedAt  time.Time
}
