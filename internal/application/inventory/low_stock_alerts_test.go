package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
)

// alertFixture: producto bajo umbral (15 < 20) con 30 unidades vendidas en los
// últimos 30 días.
func alertFixture(t *testing.T) (*memStore, *inventory.LowStockAlertUseCase, *entity.Product, *entity.Warehouse) {
	t.Helper()
	store := newMemStore()
	wh := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Central"})
	p := store.addProduct(&entity.Product{
		CompanyID:         testCompanyID,
		SKU:               "SKU-001",
		Name:              "Tornillo 3/8",
		LowStockThreshold: 20,
	})
	store.setStock(p.ID, wh.ID, 15)
	addSale(store, p.ID, 30, 10)
	uc := inventory.NewLowStockAlertUseCase(&memTxRunner{s: store}, 30)
	return store, uc, p, wh
}

// Caso de referencia: umbral 20, stock 15, 30 vendidas en 30 días.
// promedio diario 1.0 → floor(15 / 1.0) = 15 días hasta el quiebre.
func TestGenerate_PrediceDiasHastaQuiebre(t *testing.T) {
	_, uc, p, wh := alertFixture(t)

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)

	alert := resp.Alerts[0]
	assert.Equal(t, p.ID, alert.ProductID)
	assert.Equal(t, "Tornillo 3/8", alert.ProductName)
	assert.Equal(t, wh.ID, alert.WarehouseID)
	assert.Equal(t, int64(15), alert.CurrentStock)
	assert.Equal(t, int64(20), alert.Threshold)
	assert.Equal(t, 15, alert.DaysUntilStockout)
	assert.Nil(t, alert.Supplier, "sin proveedor mapeado la alerta sale con supplier null")
}

// Con proveedor primario mapeado la alerta lo incluye para reordenar.
func TestGenerate_IncluyeProveedorPrimario(t *testing.T) {
	store, uc, p, _ := alertFixture(t)
	sup := &entity.Supplier{ID: "sup-1", Name: "Aceros SA", ContactEmail: "ventas@aceros.test"}
	store.suppliers[sup.ID] = sup
	store.primaries[p.ID] = sup.ID

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)
	require.NotNil(t, resp.Alerts[0].Supplier)
	assert.Equal(t, "Aceros SA", resp.Alerts[0].Supplier.Name)
	assert.Equal(t, "ventas@aceros.test", resp.Alerts[0].Supplier.ContactEmail)
}

// Bajo umbral pero sin ventas recientes: sin señal de demanda la predicción
// sería ruido y la tripleta se omite.
func TestGenerate_OmiteSinDemandaReciente(t *testing.T) {
	store := newMemStore()
	wh := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Central"})
	p := store.addProduct(&entity.Product{
		CompanyID: testCompanyID, SKU: "SKU-002", Name: "Pieza fría", LowStockThreshold: 20,
	})
	store.setStock(p.ID, wh.ID, 3)
	uc := inventory.NewLowStockAlertUseCase(&memTxRunner{s: store}, 30)

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalAlerts)
	assert.Empty(t, resp.Alerts)
}

// El stock en o sobre el umbral no genera alerta aunque tenga ventas.
func TestGenerate_OmiteStockEnElUmbral(t *testing.T) {
	store := newMemStore()
	wh := store.addWarehouse(&entity.Warehouse{CompanyID: testCompanyID, Name: "Central"})
	p := store.addProduct(&entity.Product{
		CompanyID: testCompanyID, SKU: "SKU-003", Name: "Al límite", LowStockThreshold: 20,
	})
	store.setStock(p.ID, wh.ID, 20)
	addSale(store, p.ID, 10, 3)
	uc := inventory.NewLowStockAlertUseCase(&memTxRunner{s: store}, 30)

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalAlerts)
}

// Las alertas son por tripleta (producto, bodega): el mismo producto bajo
// umbral en dos bodegas produce dos alertas, ordenadas por bodega.
func TestGenerate_UnaAlertaPorBodega(t *testing.T) {
	store, uc, p, _ := alertFixture(t)
	wh2 := store.addWarehouse(&entity.Warehouse{ID: "zz-ultima", CompanyID: testCompanyID, Name: "Sur"})
	store.setStock(p.ID, wh2.ID, 2)

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalAlerts)
	assert.Equal(t, "zz-ultima", resp.Alerts[1].WarehouseID, "orden determinista por (bodega, producto)")
	assert.Equal(t, int64(2), resp.Alerts[1].CurrentStock)
	// floor(2 / 1.0) = 2 días
	assert.Equal(t, 2, resp.Alerts[1].DaysUntilStockout)
}

// El inventario de otras empresas nunca aparece en el escaneo.
func TestGenerate_AislaPorEmpresa(t *testing.T) {
	store, uc, _, _ := alertFixture(t)
	whAjena := store.addWarehouse(&entity.Warehouse{CompanyID: otherCompany, Name: "Ajena"})
	pAjeno := store.addProduct(&entity.Product{
		CompanyID: otherCompany, SKU: "SKU-AJ", Name: "Ajeno", LowStockThreshold: 100,
	})
	store.setStock(pAjeno.ID, whAjena.ID, 1)
	addSale(store, pAjeno.ID, 50, 1)

	resp, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalAlerts)
	assert.NotEqual(t, pAjeno.ID, resp.Alerts[0].ProductID)
}

// Dos llamadas sin mutaciones intermedias devuelven el mismo resultado.
func TestGenerate_EsRepetible(t *testing.T) {
	_, uc, _, _ := alertFixture(t)

	first, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := uc.Generate(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Equal(t, first.TotalAlerts, second.TotalAlerts)
	assert.Equal(t, first.Alerts, second.Alerts)
}
