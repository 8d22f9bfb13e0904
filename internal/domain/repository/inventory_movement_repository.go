package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stockwatch/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el log de
// auditoría de inventario (append-only: no hay Update ni Delete).
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)

	// SumSales suma las unidades vendidas (movimientos reason='sale' con delta
	// negativo) de un producto en todas las bodegas desde la fecha indicada.
	// Devuelve un total no negativo; 0 si no hay movimientos.
	SumSales(ctx context.Context, productID string, since time.Time) (int64, error)
}
