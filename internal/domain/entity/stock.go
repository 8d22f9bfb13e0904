package entity

import "time"

// Stock representa el inventario actual de un producto en una bodega.
// La pareja (ProductID, WarehouseID) es única; la fila se crea de forma
// perezosa con el primer evento de stock y Quantity nunca baja de cero.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
