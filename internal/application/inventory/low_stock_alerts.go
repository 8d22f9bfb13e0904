package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	domaininv "github.com/tu-usuario/stockwatch/internal/domain/inventory"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
	"github.com/tu-usuario/stockwatch/internal/metrics"
)

// LowStockAlertUseCase genera las alertas de reposición de una empresa.
// Todo el escaneo corre dentro de una transacción de solo lectura REPEATABLE
// READ (foto consistente): las cantidades y las sumas de ventas provienen del
// mismo instante, así dos llamadas sin mutaciones intermedias devuelven
// exactamente el mismo resultado.
type LowStockAlertUseCase struct {
	txRunner   TxRunner
	windowDays int // ventana de demanda reciente, típicamente 30
}

// NewLowStockAlertUseCase construye el generador de alertas.
func NewLowStockAlertUseCase(txRunner TxRunner, windowDays int) *LowStockAlertUseCase {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &LowStockAlertUseCase{txRunner: txRunner, windowDays: windowDays}
}

// Generate recorre cada tripleta (stock, producto, bodega) de la empresa con
// cantidad bajo el umbral, en orden (warehouse_id, product_id):
//
//  1. Sin ventas recientes (<= 0) la predicción no tiene señal y se omite.
//  2. promedio_diario = ventas / ventana (> 0 garantizado por el paso 1).
//  3. días_hasta_quiebre = floor(cantidad / promedio_diario).
//  4. El proveedor primario se resuelve por producto; sin proveedor la alerta
//     sale igual con supplier null.
func (uc *LowStockAlertUseCase) Generate(
	ctx context.Context,
	companyID string,
) (*dto.LowStockAlertsResponse, error) {
	if companyID == "" {
		return nil, domain.Validation("company_id", "es obligatorio")
	}

	start := time.Now()
	since := start.AddDate(0, 0, -uc.windowDays)
	resp := &dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{}}

	err := uc.txRunner.RunSnapshot(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		rows, err := stockRepo.ListBelowThreshold(ctx, companyID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			sold, err := movRepo.SumSales(ctx, row.ProductID, since)
			if err != nil {
				return err
			}
			if sold <= 0 {
				continue // sin señal de demanda, la proyección sería ruido
			}
			avgDaily := domaininv.AverageDailySales(sold, uc.windowDays)
			days := domaininv.DaysUntilStockout(row.Quantity, avgDaily)

			supplier, err := supplierRepo.GetPrimaryByProduct(ctx, row.ProductID)
			if err != nil {
				return err
			}
			var ref *dto.SupplierRef
			if supplier != nil {
				ref = &dto.SupplierRef{
					ID:           supplier.ID,
					Name:         supplier.Name,
					ContactEmail: supplier.ContactEmail,
				}
			}

			resp.Alerts = append(resp.Alerts, dto.LowStockAlertDTO{
				ProductID:         row.ProductID,
				ProductName:       row.ProductName,
				SKU:               row.SKU,
				WarehouseID:       row.WarehouseID,
				WarehouseName:     row.WarehouseName,
				CurrentStock:      row.Quantity,
				Threshold:         row.Threshold,
				DaysUntilStockout: days,
				Supplier:          ref,
			})
		}
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("low stock scan", err)
	}

	resp.TotalAlerts = len(resp.Alerts)
	metrics.AlertsGenerated.Add(float64(resp.TotalAlerts))
	metrics.AlertScanDuration.Observe(time.Since(start).Seconds())
	return resp, nil
}
