package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockwatch/internal/domain"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los stubs de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	stocks     map[string]*entity.Stock // key: productID|warehouseID
	movements  []*entity.InventoryMovement
	suppliers  map[string]*entity.Supplier
	primaries  map[string]string // productID -> supplierID
	components map[string][]*entity.BundleComponent

	// onStockLock corre al momento de tomar el lock de fila en GetForUpdate.
	// Los tests lo usan para intercalar a otro escritor que confirma primero,
	// igual que una transacción concurrente que ganó la carrera por el lock.
	onStockLock func(productID, warehouseID string)
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		warehouses: make(map[string]*entity.Warehouse),
		stocks:     make(map[string]*entity.Stock),
		suppliers:  make(map[string]*entity.Supplier),
		primaries:  make(map[string]string),
		components: make(map[string][]*entity.BundleComponent),
	}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func (s *memStore) addProduct(p *entity.Product) *entity.Product {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addWarehouse(w *entity.Warehouse) *entity.Warehouse {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	s.warehouses[w.ID] = w
	return w
}

func (s *memStore) setStock(productID, warehouseID string, qty int64) {
	s.stocks[stockKey(productID, warehouseID)] = &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

func (s *memStore) quantity(productID, warehouseID string) int64 {
	st, ok := s.stocks[stockKey(productID, warehouseID)]
	if !ok {
		return 0
	}
	return st.Quantity
}

// snapshot copia el estado mutable para emular el rollback de la transacción.
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.stocks {
		st := *v
		cp.stocks[k] = &st
	}
	cp.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.stocks = snap.stocks
	s.movements = snap.movements
}

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct{ s *memStore }

func (r *stubProductRepo) Create(p *entity.Product) error {
	for _, ex := range r.s.products {
		if ex.CompanyID == p.CompanyID && ex.SKU == p.SKU {
			return domain.ErrDuplicateSKU // emula la constraint única
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type stubWarehouseRepo struct{ s *memStore }

func (r *stubWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *stubWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *stubWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubWarehouseRepo) Delete(id string) error {
	delete(r.s.warehouses, id)
	return nil
}

type stubStockRepo struct{ s *memStore }

func (r *stubStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	st, ok := r.s.stocks[stockKey(productID, warehouseID)]
	if !ok {
		// Fila inexistente se lee como cantidad 0 sin crearla
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	cp := *st
	return &cp, nil
}

// GetForUpdate emula al adaptador real: la pareja sin fila se materializa en
// cero bajo el lock y la lectura ocurre DESPUÉS de que cualquier transacción
// concurrente (onStockLock) haya confirmado. Un rollback posterior descarta la
// fila materializada vía restore.
func (r *stubStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	if r.s.onStockLock != nil {
		r.s.onStockLock(productID, warehouseID)
	}
	key := stockKey(productID, warehouseID)
	st, ok := r.s.stocks[key]
	if !ok {
		st = &entity.Stock{ProductID: productID, WarehouseID: warehouseID, UpdatedAt: time.Now()}
		r.s.stocks[key] = st
	}
	cp := *st
	return &cp, nil
}

func (r *stubStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.s.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

func (r *stubStockRepo) ListBelowThreshold(_ context.Context, companyID string) ([]repository.LowStockRow, error) {
	var rows []repository.LowStockRow
	for _, st := range r.s.stocks {
		p, ok := r.s.products[st.ProductID]
		if !ok || p.CompanyID != companyID {
			continue
		}
		w, ok := r.s.warehouses[st.WarehouseID]
		if !ok || w.CompanyID != companyID {
			continue
		}
		if st.Quantity >= p.LowStockThreshold {
			continue
		}
		rows = append(rows, repository.LowStockRow{
			ProductID:     p.ID,
			ProductName:   p.Name,
			SKU:           p.SKU,
			WarehouseID:   w.ID,
			WarehouseName: w.Name,
			Quantity:      st.Quantity,
			Threshold:     p.LowStockThreshold,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WarehouseID != rows[j].WarehouseID {
			return rows[i].WarehouseID < rows[j].WarehouseID
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	return rows, nil
}

type stubMovementRepo struct{ s *memStore }

func (r *stubMovementRepo) Create(m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *stubMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) SumSales(_ context.Context, productID string, since time.Time) (int64, error) {
	var total int64
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.Reason == entity.ReasonSale && m.Quantity < 0 && !m.CreatedAt.Before(since) {
			total += -m.Quantity
		}
	}
	return total, nil
}

type stubSupplierRepo struct{ s *memStore }

func (r *stubSupplierRepo) Create(sup *entity.Supplier) error {
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

func (r *stubSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		cp := *sup
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubSupplierRepo) SetPrimary(productID, supplierID string) error {
	r.s.primaries[productID] = supplierID
	return nil
}

func (r *stubSupplierRepo) GetPrimaryByProduct(_ context.Context, productID string) (*entity.Supplier, error) {
	supID, ok := r.s.primaries[productID]
	if !ok {
		return nil, nil
	}
	return r.GetByID(supID)
}

type stubBundleRepo struct{ s *memStore }

func (r *stubBundleRepo) AddComponent(c *entity.BundleComponent) error {
	cp := *c
	r.s.components[c.BundleID] = append(r.s.components[c.BundleID], &cp)
	return nil
}

func (r *stubBundleRepo) RemoveComponent(bundleID, productID string) error {
	list := r.s.components[bundleID]
	var out []*entity.BundleComponent
	for _, c := range list {
		if c.ProductID != productID {
			out = append(out, c)
		}
	}
	r.s.components[bundleID] = out
	return nil
}

func (r *stubBundleRepo) ListByBundle(bundleID string) ([]*entity.BundleComponent, error) {
	list := append([]*entity.BundleComponent(nil), r.s.components[bundleID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner en memoria: fn corre sobre los stubs y un error restaura el estado
// previo, igual que el rollback real
// ──────────────────────────────────────────────────────────────────────────────

type memTxRunner struct {
	s     *memStore
	snaps []*memStore // pila: una entrada por transacción activa
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.snaps = append(t.snaps, t.s.snapshot())
	err := fn(&stubMovementRepo{t.s}, &stubStockRepo{t.s}, &stubProductRepo{t.s})
	snap := t.snaps[len(t.snaps)-1]
	t.snaps = t.snaps[:len(t.snaps)-1]
	if err != nil {
		t.s.restore(snap)
		return err
	}
	// Commit: una transacción exterior que falle después no debe deshacer lo
	// confirmado aquí (los locks de fila garantizan que no comparten escrituras)
	for i := range t.snaps {
		t.snaps[i] = t.s.snapshot()
	}
	return nil
}

func (t *memTxRunner) RunSnapshot(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return fn(&stubMovementRepo{t.s}, &stubStockRepo{t.s}, &stubSupplierRepo{t.s})
}
