package entity

import "time"

// BundleComponent define un componente de un producto tipo bundle:
// una unidad de BundleID contiene Quantity unidades de ProductID.
// El grafo de composición no admite ciclos.
type BundleComponent struct {
	BundleID  string
	ProductID string
	Quantity  int64 // > 0
	CreatedAt time.Time
}
