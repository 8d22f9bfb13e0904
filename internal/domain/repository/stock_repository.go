package repository

import (
	"context"

	"github.com/tu-usuario/stockwatch/internal/domain/entity"
)

// LowStockRow resultado crudo del escaneo de alertas: una tripleta
// (stock, producto, bodega) cuyo inventario está por debajo del umbral.
type LowStockRow struct {
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseID   string
	WarehouseName string
	Quantity      int64
	Threshold     int64
}

// StockRepository define el puerto para consultar/actualizar stock por producto+bodega.
// Las mutaciones se usan siempre dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Una pareja sin fila se
	// materializa en cero bajo el lock; si la transacción termina en rollback
	// la fila en cero desaparece con ella.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error

	// ListBelowThreshold devuelve las tripletas de la empresa con cantidad por
	// debajo del umbral del producto, ordenadas por (warehouse_id, product_id)
	// para que el resultado sea determinista.
	ListBelowThreshold(ctx context.Context, companyID string) ([]LowStockRow, error)
}
