package usecase

import (
	"time"

	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// BundleUseCase administra la composición de bundles. El invariante duro es
// la aciclicidad del grafo: se verifica con un DFS antes de cada inserción.
type BundleUseCase struct {
	bundleRepo  repository.BundleRepository
	productRepo repository.ProductRepository
}

// NewBundleUseCase construye el caso de uso.
func NewBundleUseCase(bundleRepo repository.BundleRepository, productRepo repository.ProductRepository) *BundleUseCase {
	return &BundleUseCase{bundleRepo: bundleRepo, productRepo: productRepo}
}

// AddComponent agrega un componente al bundle. El bundle debe ser de la
// empresa y de tipo bundle; el componente debe existir y la arista nueva no
// puede cerrar un ciclo.
func (uc *BundleUseCase) AddComponent(companyID, bundleID string, in dto.AddBundleComponentRequest) error {
	if in.ProductID == "" {
		return domain.Validation("product_id", "es obligatorio")
	}
	if in.Quantity <= 0 {
		return domain.Validation("quantity", "debe ser positivo")
	}
	if in.ProductID == bundleID {
		return domain.ErrBundleCycle
	}

	bundle, err := uc.productRepo.GetByID(bundleID)
	if err != nil {
		return domain.Persistence("get bundle", err)
	}
	if bundle == nil {
		return domain.ErrNotFound
	}
	if bundle.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if !bundle.IsBundle() {
		return domain.Validation("bundle_id", "no es un producto tipo bundle")
	}

	component, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return domain.Persistence("get component", err)
	}
	if component == nil {
		return domain.ErrNotFound
	}
	if component.CompanyID != companyID {
		return domain.ErrForbidden
	}

	cycle, err := uc.wouldCycle(bundleID, in.ProductID)
	if err != nil {
		return domain.Persistence("check cycle", err)
	}
	if cycle {
		return domain.ErrBundleCycle
	}

	comp := &entity.BundleComponent{
		BundleID:  bundleID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CreatedAt: time.Now(),
	}
	if err := uc.bundleRepo.AddComponent(comp); err != nil {
		return domain.Persistence("add component", err)
	}
	return nil
}

// Components lista la composición directa de un bundle de la empresa.
func (uc *BundleUseCase) Components(companyID, bundleID string) ([]*dto.BundleComponentResponse, error) {
	bundle, err := uc.productRepo.GetByID(bundleID)
	if err != nil {
		return nil, domain.Persistence("get bundle", err)
	}
	if bundle == nil {
		return nil, domain.ErrNotFound
	}
	if bundle.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	comps, err := uc.bundleRepo.ListByBundle(bundleID)
	if err != nil {
		return nil, domain.Persistence("list components", err)
	}
	out := make([]*dto.BundleComponentResponse, 0, len(comps))
	for _, c := range comps {
		out = append(out, &dto.BundleComponentResponse{
			BundleID:  c.BundleID,
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
		})
	}
	return out, nil
}

// wouldCycle hace DFS desde el componente nuevo: si desde él se alcanza al
// bundle, la arista bundle→componente cerraría un ciclo.
func (uc *BundleUseCase) wouldCycle(bundleID, componentID string) (bool, error) {
	stack := []string{componentID}
	seen := map[string]bool{}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == bundleID {
			return true, nil
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		comps, err := uc.bundleRepo.ListByBundle(id)
		if err != nil {
			return false, err
		}
		for _, c := range comps {
			stack = append(stack, c.ProductID)
		}
	}
	return false, nil
}
