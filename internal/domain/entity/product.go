package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeStandard = "standard"
	ProductTypeBundle   = "bundle" // compuesto por otros productos (ver BundleComponent)
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// El stock no vive aquí: se maneja por bodega en Stock y se audita en
// InventoryMovement. LowStockThreshold dispara las alertas de reposición.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string // unicidad por empresa o global según configuración
	Name              string
	Description       string
	Price             decimal.Decimal // precio de venta, nunca negativo
	Type              string          // standard | bundle
	LowStockThreshold int64           // unidades; >= 0
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsBundle indica si el producto es un compuesto.
func (p *Product) IsBundle() bool { return p.Type == ProductTypeBundle }
