package dto

// SupplierRef referencia al proveedor primario dentro de una alerta.
type SupplierRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO alerta de reposición para una pareja (producto, bodega).
// Supplier es nil cuando el producto no tiene proveedor mapeado; eso no es un error.
type LowStockAlertDTO struct {
	ProductID         string       `json:"product_id"`
	ProductName       string       `json:"product_name"`
	SKU               string       `json:"sku"`
	WarehouseID       string       `json:"warehouse_id"`
	WarehouseName     string       `json:"warehouse_name"`
	CurrentStock      int64        `json:"current_stock"`
	Threshold         int64        `json:"threshold"`
	DaysUntilStockout int          `json:"days_until_stockout"`
	Supplier          *SupplierRef `json:"supplier"`
}

// LowStockAlertsResponse respuesta de GET /api/inventory/low-stock-alerts.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
