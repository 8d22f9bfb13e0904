package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores y resolución del proveedor primario de
// un producto. "Sin proveedor" es un estado terminal válido, nunca un error.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo}
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name", "es obligatorio")
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return nil, domain.Validation("contact_email", "es obligatorio")
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ContactEmail: in.ContactEmail,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, domain.Persistence("create supplier", err)
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(page dto.PageRequest) ([]*dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Persistence("list suppliers", err)
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// SetPrimary fija el proveedor primario de un producto de la empresa.
func (uc *SupplierUseCase) SetPrimary(companyID, productID, supplierID string) error {
	if supplierID == "" {
		return domain.Validation("supplier_id", "es obligatorio")
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return domain.Persistence("get product", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	supplier, err := uc.repo.GetByID(supplierID)
	if err != nil {
		return domain.Persistence("get supplier", err)
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetPrimary(productID, supplierID); err != nil {
		return domain.Persistence("set primary supplier", err)
	}
	return nil
}

// PrimaryForProduct devuelve el proveedor primario o nil si no hay mapeo.
func (uc *SupplierUseCase) PrimaryForProduct(ctx context.Context, productID string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetPrimaryByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Persistence("get primary supplier", err)
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		Phone:        s.Phone,
		CreatedAt:    s.CreatedAt,
	}
}
