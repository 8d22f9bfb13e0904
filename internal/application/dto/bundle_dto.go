package dto

// AddBundleComponentRequest body para POST /api/products/:id/components.
type AddBundleComponentRequest struct {
	ProductID string `json:"product_id"` // componente
	Quantity  int64  `json:"quantity"`   // unidades del componente por bundle
}

// BundleComponentResponse un componente de la composición de un bundle.
type BundleComponentResponse struct {
	BundleID  string `json:"bundle_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}
