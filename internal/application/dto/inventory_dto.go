package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Delta es el cambio con signo: positivo entrada, negativo salida.
type AdjustStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Delta       int64  `json:"delta"`
	Reason      string `json:"reason"`
}

// AdjustStockResponse cantidad resultante tras el ajuste.
type AdjustStockResponse struct {
	NewQuantity int64 `json:"new_quantity"`
}

// SalesVelocityDTO demanda reciente de un producto en todas las bodegas.
type SalesVelocityDTO struct {
	ProductID    string  `json:"product_id"`
	WindowDays   int     `json:"window_days"`
	UnitsSold    int64   `json:"units_sold"`
	AverageDaily float64 `json:"average_daily"`
}

// AssembleBundleRequest body para POST /api/inventory/bundles/assemble.
// Count unidades del bundle se arman consumiendo componentes de la misma bodega.
type AssembleBundleRequest struct {
	BundleID    string `json:"bundle_id"`
	WarehouseID string `json:"warehouse_id"`
	Count       int64  `json:"count"`
}

// MovementResponse fila del log de auditoría.
type MovementResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
