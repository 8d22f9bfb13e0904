package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
	"github.com/tu-usuario/stockwatch/internal/metrics"
)

// BundleAssemblyUseCase arma y desarma bundles dentro de una bodega.
// Armar consume componentes y produce unidades del bundle; desarmar es la
// operación inversa. Todas las filas de stock afectadas se bloquean y los
// movimientos comparten un mismo transaction_id: la conversión es atómica.
type BundleAssemblyUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	bundleRepo    repository.BundleRepository
}

// NewBundleAssemblyUseCase construye el caso de uso.
func NewBundleAssemblyUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	bundleRepo repository.BundleRepository,
) *BundleAssemblyUseCase {
	return &BundleAssemblyUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		bundleRepo:    bundleRepo,
	}
}

// Assemble arma Count unidades del bundle consumiendo componentes.
func (uc *BundleAssemblyUseCase) Assemble(ctx context.Context, companyID, userID string, in dto.AssembleBundleRequest) error {
	return uc.convert(ctx, companyID, userID, in, true)
}

// Disassemble desarma Count unidades del bundle devolviendo los componentes.
func (uc *BundleAssemblyUseCase) Disassemble(ctx context.Context, companyID, userID string, in dto.AssembleBundleRequest) error {
	return uc.convert(ctx, companyID, userID, in, false)
}

func (uc *BundleAssemblyUseCase) convert(
	ctx context.Context,
	companyID, userID string,
	in dto.AssembleBundleRequest,
	assemble bool,
) error {
	if in.BundleID == "" {
		return domain.Validation("bundle_id", "es obligatorio")
	}
	if in.WarehouseID == "" {
		return domain.Validation("warehouse_id", "es obligatorio")
	}
	if in.Count <= 0 {
		return domain.Validation("count", "debe ser positivo")
	}

	bundle, err := uc.productRepo.GetByID(in.BundleID)
	if err != nil {
		return domain.Persistence("get bundle", err)
	}
	if bundle == nil {
		return domain.ErrNotFound
	}
	if bundle.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if !bundle.IsBundle() {
		return domain.Validation("bundle_id", "no es un producto tipo bundle")
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return domain.Persistence("get warehouse", err)
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return domain.ErrForbidden
	}

	components, err := uc.bundleRepo.ListByBundle(in.BundleID)
	if err != nil {
		return domain.Persistence("list components", err)
	}
	if len(components) == 0 {
		return domain.Validation("bundle_id", "no tiene componentes definidos")
	}

	now := time.Now()
	txID := uuid.New().String()
	reason := entity.ReasonAssemble
	if !assemble {
		reason = entity.ReasonDisassemble
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// ListByBundle ordena por product_id: el orden de bloqueo es estable
		// entre transacciones concurrentes y no puede cruzarse en deadlock.
		for _, comp := range components {
			delta := -comp.Quantity * in.Count // armar consume componentes
			if !assemble {
				delta = comp.Quantity * in.Count
			}
			if err := applyDelta(movRepo, stockRepo, comp.ProductID, in.WarehouseID, delta, reason, userID, txID, now); err != nil {
				return err
			}
		}
		bundleDelta := in.Count
		if !assemble {
			bundleDelta = -in.Count
		}
		return applyDelta(movRepo, stockRepo, in.BundleID, in.WarehouseID, bundleDelta, reason, userID, txID, now)
	})
	if err != nil {
		if domain.IsDomain(err) {
			metrics.MutationFailures.WithLabelValues(failureLabel(err)).Inc()
			return err
		}
		return domain.Persistence("bundle conversion", err)
	}

	metrics.MovementsTotal.WithLabelValues(reason).Inc()
	return nil
}

// applyDelta bloquea la fila de stock, aplica el delta respetando la
// no-negatividad y registra el movimiento de auditoría.
func applyDelta(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productID, warehouseID string,
	delta int64,
	reason, userID, txID string,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	next := stock.Quantity + delta
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
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      delta,
		Reason:        reason,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	return movRepo.Create(mov)
}
