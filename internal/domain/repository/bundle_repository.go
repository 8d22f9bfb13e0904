package repository

import "github.com/tu-usuario/stockwatch/internal/domain/entity"

// BundleRepository define el puerto de persistencia para la composición de bundles.
type BundleRepository interface {
	AddComponent(component *entity.BundleComponent) error
	RemoveComponent(bundleID, productID string) error
	// ListByBundle devuelve los componentes directos de un bundle.
	ListByBundle(bundleID string) ([]*entity.BundleComponent, error)
}
