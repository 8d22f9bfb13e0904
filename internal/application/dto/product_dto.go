package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Price viaja como string decimal y se valida antes de cualquier escritura.
// WarehouseID e InitialQuantity son opcionales pero van juntos: si hay bodega
// debe haber cantidad inicial (>= 0).
type CreateProductRequest struct {
	Name              string `json:"name"`
	SKU               string `json:"sku"`
	Description       string `json:"description,omitempty"`
	Price             string `json:"price"`
	Type              string `json:"type,omitempty"` // standard (default) | bundle
	LowStockThreshold int64  `json:"low_stock_threshold"`
	WarehouseID       string `json:"warehouse_id,omitempty"`
	InitialQuantity   *int64 `json:"initial_quantity,omitempty"`
}

// CreateProductResponse respuesta de alta de producto.
type CreateProductResponse struct {
	ProductID string `json:"product_id"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Solo precio y umbral son mutables además de los datos descriptivos;
// identidad y SKU no se tocan.
type UpdateProductRequest struct {
	Name              string `json:"name,omitempty"`
	Description       string `json:"description,omitempty"`
	Price             string `json:"price,omitempty"`
	LowStockThreshold *int64 `json:"low_stock_threshold,omitempty"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Type              string          `json:"type"`
	LowStockThreshold int64           `json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
