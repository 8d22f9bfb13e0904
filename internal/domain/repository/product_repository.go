package repository

import "github.com/tu-usuario/stockwatch/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByCompanyAndSKU busca por SKU dentro de una empresa (ámbito company).
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	// GetBySKU busca por SKU en toda la plataforma (ámbito global).
	GetBySKU(sku string) (*entity.Product, error)
	// Update modifica nombre, descripción, precio y umbral. Identidad y SKU son inmutables.
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
