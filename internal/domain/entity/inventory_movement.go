package entity

import "time"

// Razones de movimiento de inventario. Solo ReasonSale cuenta como demanda
// para el estimador de velocidad de ventas.
const (
	ReasonInitialStock = "initial_stock" // alta de producto con stock inicial
	ReasonPurchase     = "purchase"      // entrada por compra
	ReasonSale         = "sale"          // salida por venta
	ReasonAdjustment   = "adjustment"    // ajuste manual (conteo físico, merma)
	ReasonTransfer     = "transfer"      // traslado entre bodegas
	ReasonAssemble     = "assemble"      // armado de bundle desde componentes
	ReasonDisassemble  = "disassemble"   // desarme de bundle en componentes
)

// InventoryMovement es el registro de auditoría de un cambio de inventario.
// Append-only: una fila por mutación, nunca se actualiza ni se borra.
// TransactionID agrupa las filas escritas por una misma operación atómica
// (ej. armado de bundle toca varias filas).
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	Quantity      int64 // delta con signo: positivo entrada, negativo salida
	Reason        string
	CreatedBy     string
	CreatedAt     time.Time
}
