package repository

import (
	"context"

	"github.com/tu-usuario/stockwatch/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores y el
// mapeo producto → proveedor primario.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)

	// SetPrimary fija el proveedor primario de un producto (reemplaza el anterior).
	SetPrimary(productID, supplierID string) error
	// GetPrimaryByProduct devuelve el proveedor primario o nil si el producto
	// no tiene proveedor mapeado. La ausencia no es un error.
	GetPrimaryByProduct(ctx context.Context, productID string) (*entity.Supplier, error)
}
