package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
	"github.com/tu-usuario/stockwatch/internal/metrics"
	"github.com/tu-usuario/stockwatch/pkg/config"
)

// CreateProductUseCase da de alta productos con stock inicial opcional.
// Producto, fila de stock y movimiento de auditoría se escriben en una sola
// transacción: se confirman juntos o no queda nada visible.
type CreateProductUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	skuScope      string // config.SKUScopeCompany | config.SKUScopeGlobal
}

// NewCreateProductUseCase construye el caso de uso.
func NewCreateProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	skuScope string,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		skuScope:      skuScope,
	}
}

// CreateWithInitialStock valida la entrada completa antes de tocar la DB y
// luego ejecuta la transacción atómica: INSERT producto (+ stock + movimiento
// initial_stock si se indicó bodega). Devuelve el ID del producto nuevo.
//
// Errores: ValidationError (campo ofensivo), ErrDuplicateSKU (constraint única,
// rollback total), ErrNotFound/ErrForbidden (bodega ajena o inexistente),
// PersistenceError (cualquier otra falla de almacenamiento, rollback total).
func (uc *CreateProductUseCase) CreateWithInitialStock(
	ctx context.Context,
	companyID, userID string,
	in dto.CreateProductRequest,
) (string, error) {
	// Validación completa antes de cualquier intento de persistencia
	if strings.TrimSpace(in.Name) == "" {
		return "", domain.Validation("name", "es obligatorio")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return "", domain.Validation("sku", "es obligatorio")
	}
	if strings.TrimSpace(in.Price) == "" {
		return "", domain.Validation("price", "es obligatorio")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return "", domain.Validation("price", "no es un decimal válido")
	}
	if price.IsNegative() {
		return "", domain.Validation("price", "no puede ser negativo")
	}
	if in.LowStockThreshold < 0 {
		return "", domain.Validation("low_stock_threshold", "no puede ser negativo")
	}
	productType := in.Type
	if productType == "" {
		productType = entity.ProductTypeStandard
	}
	if productType != entity.ProductTypeStandard && productType != entity.ProductTypeBundle {
		return "", domain.Validation("type", "debe ser standard o bundle")
	}
	if in.WarehouseID != "" && in.InitialQuantity == nil {
		return "", domain.Validation("initial_quantity", "es obligatorio cuando se indica warehouse_id")
	}
	if in.WarehouseID == "" && in.InitialQuantity != nil {
		return "", domain.Validation("warehouse_id", "es obligatorio cuando se indica initial_quantity")
	}
	if in.InitialQuantity != nil && *in.InitialQuantity < 0 {
		return "", domain.Validation("initial_quantity", "no puede ser negativo")
	}

	if in.WarehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
		if err != nil {
			return "", domain.Persistence("get warehouse", err)
		}
		if wh == nil {
			return "", domain.ErrNotFound
		}
		if wh.CompanyID != companyID {
			return "", domain.ErrForbidden
		}
	}

	// Pre-chequeo de SKU según el ámbito configurado. La constraint única de
	// la DB sigue siendo la última línea de defensa ante carreras.
	var existing *entity.Product
	if uc.skuScope == config.SKUScopeGlobal {
		existing, err = uc.productRepo.GetBySKU(in.SKU)
	} else {
		existing, err = uc.productRepo.GetByCompanyAndSKU(companyID, in.SKU)
	}
	if err != nil {
		return "", domain.Persistence("check sku", err)
	}
	if existing != nil {
		metrics.MutationFailures.WithLabelValues("duplicate_sku").Inc()
		return "", domain.ErrDuplicateSKU
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Price:             price,
		Type:              productType,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	txID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.WarehouseID == "" {
			return nil
		}
		stock := &entity.Stock{
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			Quantity:    *in.InitialQuantity,
			UpdatedAt:   now,
		}
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			TransactionID: txID,
			ProductID:     product.ID,
			WarehouseID:   in.WarehouseID,
			Quantity:      *in.InitialQuantity,
			Reason:        entity.ReasonInitialStock,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		if domain.IsDomain(err) {
			metrics.MutationFailures.WithLabelValues(failureLabel(err)).Inc()
			return "", err
		}
		return "", domain.Persistence("create product", err)
	}

	if in.WarehouseID != "" {
		metrics.MovementsTotal.WithLabelValues(entity.ReasonInitialStock).Inc()
	}
	return product.ID, nil
}

// failureLabel traduce un error de dominio a la etiqueta del contador de
// mutaciones rechazadas.
func failureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateSKU):
		return "duplicate_sku"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "other"
	}
}
