package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	domaininv "github.com/tu-usuario/stockwatch/internal/domain/inventory"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// SalesVelocityUseCase estima la demanda reciente de un producto: suma los
// movimientos de venta (delta negativo, reason='sale') de todas las bodegas
// en la ventana indicada.
type SalesVelocityUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewSalesVelocityUseCase construye el estimador.
func NewSalesVelocityUseCase(movRepo repository.InventoryMovementRepository) *SalesVelocityUseCase {
	return &SalesVelocityUseCase{movRepo: movRepo}
}

// RecentSales devuelve unidades vendidas y promedio diario en la ventana.
// windowDays <= 0 es un error de validación; sin movimientos devuelve ceros.
func (uc *SalesVelocityUseCase) RecentSales(
	ctx context.Context,
	productID string,
	windowDays int,
) (*dto.SalesVelocityDTO, error) {
	if productID == "" {
		return nil, domain.Validation("product_id", "es obligatorio")
	}
	if windowDays <= 0 {
		return nil, domain.Validation("window_days", "debe ser positivo")
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	sold, err := uc.movRepo.SumSales(ctx, productID, since)
	if err != nil {
		return nil, domain.Persistence("sum sales", err)
	}

	return &dto.SalesVelocityDTO{
		ProductID:    productID,
		WindowDays:   windowDays,
		UnitsSold:    sold,
		AverageDaily: domaininv.AverageDailySales(sold, windowDays),
	}, nil
}
