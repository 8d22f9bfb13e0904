package usecase

import (
	"time"

	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// MovementUseCase lecturas del log de auditoría de inventario.
type MovementUseCase struct {
	movRepo       repository.InventoryMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// ListByProduct lista movimientos de un producto de la empresa en un rango opcional.
func (uc *MovementUseCase) ListByProduct(companyID, productID string, from, to *time.Time, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, domain.Persistence("get product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Persistence("list movements", err)
	}
	return toMovementResponses(list), nil
}

// ListByWarehouse lista movimientos de una bodega de la empresa en un rango opcional.
func (uc *MovementUseCase) ListByWarehouse(companyID, warehouseID string, from, to *time.Time, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, domain.Persistence("get warehouse", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByWarehouse(warehouseID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Persistence("list movements", err)
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []*entity.InventoryMovement) []*dto.MovementResponse {
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
