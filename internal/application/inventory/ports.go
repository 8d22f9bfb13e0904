package inventory

import (
	"context"

	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// mutación: o se confirman todas las escrituras o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunSnapshot abre una transacción de solo lectura con aislamiento
	// REPEATABLE READ: el escaneo de alertas lee una foto consistente y no
	// mezcla filas de stock a medio actualizar con sumas de movimientos viejas.
	RunSnapshot(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// LowStockEvent payload de la notificación de stock bajo tras un ajuste.
type LowStockEvent struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Threshold   int64  `json:"threshold"`
}

// LowStockNotifier encola notificaciones de stock bajo fuera de la transacción.
// Implementación nil = notificaciones deshabilitadas.
type LowStockNotifier interface {
	EnqueueLowStock(ctx context.Context, event LowStockEvent) error
}
