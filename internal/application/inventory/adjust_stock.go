package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
	"github.com/tu-usuario/stockwatch/internal/metrics"
	"github.com/tu-usuario/stockwatch/pkg/logger"
)

// Razones aceptadas en ajustes vía API. initial_stock, assemble y disassemble
// las escribe solo el motor.
var adjustReasons = map[string]bool{
	entity.ReasonPurchase:   true,
	entity.ReasonSale:       true,
	entity.ReasonAdjustment: true,
	entity.ReasonTransfer:   true,
}

// AdjustStockUseCase aplica deltas de inventario de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE): la verificación de no-negatividad, la
// actualización de cantidad y el movimiento de auditoría son atómicos.
// Dos deducciones concurrentes sobre la misma (producto, bodega) se serializan
// en el lock; nunca pueden confirmar ambas si su suma dejaría el stock en rojo.
type AdjustStockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	notifier      LowStockNotifier // nil = sin cola de notificaciones
	log           *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso. notifier puede ser nil.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	notifier LowStockNotifier,
	log *logger.Logger,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		notifier:      notifier,
		log:           log,
	}
}

// Adjust aplica el delta sobre (product_id, warehouse_id) y devuelve la
// cantidad resultante. La fila de stock se crea perezosamente con el primer
// ajuste legal; un ajuste rechazado no escribe movimiento ni crea la fila.
func (uc *AdjustStockUseCase) Adjust(
	ctx context.Context,
	companyID, userID string,
	in dto.AdjustStockRequest,
) (int64, error) {
	if in.ProductID == "" {
		return 0, domain.Validation("product_id", "es obligatorio")
	}
	if in.WarehouseID == "" {
		return 0, domain.Validation("warehouse_id", "es obligatorio")
	}
	if in.Delta == 0 {
		return 0, domain.Validation("delta", "no puede ser cero")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return 0, domain.Validation("reason", "es obligatorio")
	}
	if !adjustReasons[reason] {
		return 0, domain.Validation("reason", "no es una razón de ajuste válida")
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return 0, domain.Persistence("get product", err)
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return 0, domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return 0, domain.Persistence("get warehouse", err)
	}
	if wh == nil {
		return 0, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return 0, domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()
	var newQuantity int64

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// Bloquea la fila (SELECT FOR UPDATE); una pareja sin fila se
		// materializa en cero bajo el lock y el rollback la descarta si el
		// ajuste termina rechazado
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		next := stock.Quantity + in.Delta
		if next < 0 {
			return domain.ErrInsufficientStock
		}
		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			TransactionID: txID,
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Quantity:      in.Delta,
			Reason:        reason,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		newQuantity = next
		return nil
	})
	if err != nil {
		if domain.IsDomain(err) {
			metrics.MutationFailures.WithLabelValues(failureLabel(err)).Inc()
			return 0, err
		}
		return 0, domain.Persistence("adjust stock", err)
	}

	metrics.MovementsTotal.WithLabelValues(reason).Inc()

	// Post-commit, best effort: si quedó bajo el umbral, encolar notificación.
	// Una falla aquí no revierte el ajuste ya confirmado.
	if uc.notifier != nil && newQuantity < product.LowStockThreshold {
		event := LowStockEvent{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Quantity:    newQuantity,
			Threshold:   product.LowStockThreshold,
		}
		if err := uc.notifier.EnqueueLowStock(ctx, event); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", in.ProductID).
				Str("warehouse_id", in.WarehouseID).
				Msg("no se pudo encolar la notificación de stock bajo")
		}
	}

	return newQuantity, nil
}
