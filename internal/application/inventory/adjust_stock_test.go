package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/pkg/logger"
)

const (
	testCompanyID = "00000000-0000-0000-0000-00000000c001"
	testUserID    = "00000000-0000-0000-0000-00000000a001"
	otherCompany  = "00000000-0000-0000-0000-00000000c002"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// captureNotifier guarda los eventos encolados para inspección.
type captureNotifier struct {
	events []inventory.LowStockEvent
}

func (n *captureNotifier) EnqueueLowStock(_ context.Context, e inventory.LowStockEvent) error {
	n.events = append(n.events, e)
	return nil
}

// adjustFixture deja listo un producto con stock en una bodega de la empresa.
func adjustFixture(t *testing.T, qty int64, threshold int64) (*memStore, *inventory.AdjustStockUseCase, *entity.Product, *entity.Warehouse, *captureNotifier) {
	t.Helper()
	store := newMemStore()
	wh := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Central"})
	p := store.addProduct(&entity.Product{
		CompanyID:         testCompanyID,
		SKU:               "SKU-001",
		Name:              "Tornillo 3/8",
		LowStockThreshold: threshold,
	})
	store.setStock(p.ID, wh.ID, qty)
	notifier := &captureNotifier{}
	uc := inventory.NewAdjustStockUseCase(
		&memTxRunner{s: store}, &stubProductRepo{store}, &stubWarehouseRepo{store},
		notifier, testLogger(),
	)
	return store, uc, p, wh, notifier
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes legales
// ──────────────────────────────────────────────────────────────────────────────

// Venta de 3 unidades sobre 10 en stock: queda 7 y se escribe exactamente un
// movimiento de auditoría con el delta firmado.
func TestAdjust_VentaDescuentaYRegistraMovimiento(t *testing.T) {
	store, uc, p, wh, _ := adjustFixture(t, 10, 0)

	newQty, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh.ID,
		Delta:       -3,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), newQty)
	assert.Equal(t, int64(7), store.quantity(p.ID, wh.ID), "el stock persistido debe reflejar el ajuste")

	require.Len(t, store.movements, 1, "un ajuste legal escribe exactamente un movimiento")
	mov := store.movements[0]
	assert.Equal(t, int64(-3), mov.Quantity)
	assert.Equal(t, entity.ReasonSale, mov.Reason)
	assert.Equal(t, testUserID, mov.CreatedBy)
	assert.NotEmpty(t, mov.TransactionID)
}

// La fila de stock se crea perezosamente: un producto sin fila en la bodega
// arranca en 0 y la primera compra la materializa.
func TestAdjust_CompraCreaFilaPerezosamente(t *testing.T) {
	store, uc, p, _, _ := adjustFixture(t, 10, 0)
	wh2 := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Norte"})

	newQty, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh2.ID,
		Delta:       4,
		Reason:      entity.ReasonPurchase,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), newQty)
	assert.Equal(t, int64(4), store.quantity(p.ID, wh2.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente: atomicidad del rechazo
// ──────────────────────────────────────────────────────────────────────────────

// Deducir 10 sobre 5 en stock falla y NO deja rastro: ni cantidad cambiada ni
// movimiento escrito.
func TestAdjust_StockInsuficiente_SinEfectosParciales(t *testing.T) {
	store, uc, p, wh, _ := adjustFixture(t, 5, 0)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh.ID,
		Delta:       -10,
		Reason:      entity.ReasonSale,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), store.quantity(p.ID, wh.ID), "la cantidad no debe cambiar tras un rechazo")
	assert.Empty(t, store.movements, "un ajuste rechazado no escribe movimiento")
}

// Deducir exactamente el stock disponible es legal: el resultado 0 no es negativo.
func TestAdjust_DeducirTodoElStock(t *testing.T) {
	store, uc, p, wh, _ := adjustFixture(t, 5, 0)

	newQty, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh.ID,
		Delta:       -5,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), newQty)
	assert.Equal(t, int64(0), store.quantity(p.ID, wh.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Serialización de ajustes concurrentes
// ──────────────────────────────────────────────────────────────────────────────

// Dos primeros ajustes sobre una pareja todavía sin fila de stock: la fila se
// materializa en cero bajo el lock, el perdedor de la carrera lee la cantidad
// ya confirmada por el ganador y ninguna escritura se pierde.
func TestAdjust_PrimerAjusteConcurrente_NoPierdeEscrituras(t *testing.T) {
	store, uc, p, _, _ := adjustFixture(t, 10, 0)
	wh2 := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Norte"})

	fired := false
	store.onStockLock = func(productID, warehouseID string) {
		if fired {
			return
		}
		fired = true
		// Escritor concurrente que gana la carrera por el lock y confirma primero
		_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Delta:       10,
			Reason:      entity.ReasonPurchase,
		})
		require.NoError(t, err)
	}

	newQty, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh2.ID,
		Delta:       5,
		Reason:      entity.ReasonPurchase,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), newQty, "el segundo escritor parte de la cantidad ya confirmada, no de cero")
	assert.Equal(t, int64(15), store.quantity(p.ID, wh2.ID))

	require.Len(t, store.movements, 2)
	var sum int64
	for _, m := range store.movements {
		sum += m.Quantity
	}
	assert.Equal(t, int64(15), sum, "stock y log de movimientos cuentan lo mismo")
}

// Dos deducciones concurrentes que no caben juntas: exactamente una confirma.
// La que pierde el lock lee la cantidad ya descontada y se rechaza completa,
// sin deshacer a la ganadora.
func TestAdjust_DeduccionesConcurrentes_ExactamenteUnaGana(t *testing.T) {
	store, uc, p, wh, _ := adjustFixture(t, 10, 0)

	fired := false
	store.onStockLock = func(productID, warehouseID string) {
		if fired {
			return
		}
		fired = true
		_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Delta:       -7,
			Reason:      entity.ReasonSale,
		})
		require.NoError(t, err, "la primera deducción cabe completa")
	}

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh.ID,
		Delta:       -7,
		Reason:      entity.ReasonSale,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), store.quantity(p.ID, wh.ID), "solo la deducción ganadora queda aplicada")
	require.Len(t, store.movements, 1)
	assert.Equal(t, int64(-7), store.movements[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y pertenencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_Validaciones(t *testing.T) {
	_, uc, p, wh, _ := adjustFixture(t, 10, 0)

	cases := []struct {
		name  string
		in    dto.AdjustStockRequest
		field string
	}{
		{"sin producto", dto.AdjustStockRequest{WarehouseID: wh.ID, Delta: 1, Reason: entity.ReasonSale}, "product_id"},
		{"sin bodega", dto.AdjustStockRequest{ProductID: p.ID, Delta: 1, Reason: entity.ReasonSale}, "warehouse_id"},
		{"delta cero", dto.AdjustStockRequest{ProductID: p.ID, WarehouseID: wh.ID, Delta: 0, Reason: entity.ReasonSale}, "delta"},
		{"sin razón", dto.AdjustStockRequest{ProductID: p.ID, WarehouseID: wh.ID, Delta: 1}, "reason"},
		{"razón desconocida", dto.AdjustStockRequest{ProductID: p.ID, WarehouseID: wh.ID, Delta: 1, Reason: "robo"}, "reason"},
		{"razón reservada al motor", dto.AdjustStockRequest{ProductID: p.ID, WarehouseID: wh.ID, Delta: 1, Reason: entity.ReasonAssemble}, "reason"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, tc.in)
			ve, ok := domain.AsValidation(err)
			require.True(t, ok, "debe ser error de validación, fue: %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestAdjust_ProductoDeOtraEmpresa_Forbidden(t *testing.T) {
	store, uc, _, wh, _ := adjustFixture(t, 10, 0)
	ajeno := store.addProduct(&entity.Product{CompanyID: otherCompany, SKU: "SKU-X", Name: "Ajeno"})

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   ajeno.ID,
		WarehouseID: wh.ID,
		Delta:       1,
		Reason:      entity.ReasonPurchase,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjust_ProductoInexistente_NotFound(t *testing.T) {
	_, uc, _, wh, _ := adjustFixture(t, 10, 0)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   "11111111-1111-1111-1111-111111111111",
		WarehouseID: wh.ID,
		Delta:       1,
		Reason:      entity.ReasonPurchase,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación de stock bajo post-commit
// ──────────────────────────────────────────────────────────────────────────────

// Si el ajuste deja la cantidad bajo el umbral, se encola la notificación con
// el estado final.
func TestAdjust_EncolaNotificacionBajoUmbral(t *testing.T) {
	_, uc, p, wh, notifier := adjustFixture(t, 12, 10)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID:   p.ID,
		WarehouseID: wh.ID,
		Delta:       -5,
		Reason:      entity.ReasonSale,
	})
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, p.ID, ev.ProductID)
	assert.Equal(t, wh.ID, ev.WarehouseID)
	assert.Equal(t, int64(7), ev.Quantity)
	assert.Equal(t, int64(10), ev.Threshold)
}

// Sobre el umbral no se notifica; y un ajuste rechazado tampoco.
func TestAdjust_NoNotificaSobreUmbralNiEnRechazo(t *testing.T) {
	_, uc, p, wh, notifier := adjustFixture(t, 12, 10)

	_, err := uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID: p.ID, WarehouseID: wh.ID, Delta: -1, Reason: entity.ReasonSale,
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.events, "11 >= 10: no debe notificar")

	_, err = uc.Adjust(context.Background(), testCompanyID, testUserID, dto.AdjustStockRequest{
		ProductID: p.ID, WarehouseID: wh.ID, Delta: -100, Reason: entity.ReasonSale,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, notifier.events, "un rechazo no encola nada")
}
