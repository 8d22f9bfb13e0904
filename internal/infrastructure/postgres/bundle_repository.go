package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo implementación sobre PostgreSQL (usable con pool o tx).
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// AddComponent agrega (o actualiza la cantidad de) un componente del bundle.
func (r *BundleRepo) AddComponent(component *entity.BundleComponent) error {
	query := `
		INSERT INTO bundle_components (bundle_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bundle_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`
	_, err := r.q.Exec(context.Background(), query,
		component.BundleID, component.ProductID, component.Quantity, component.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add bundle component: %w", err)
	}
	return nil
}

// RemoveComponent elimina un componente del bundle.
func (r *BundleRepo) RemoveComponent(bundleID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM bundle_components WHERE bundle_id = $1 AND product_id = $2`,
		bundleID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove bundle component: %w", err)
	}
	return nil
}

// ListByBundle lista los componentes directos, ordenados por product_id para
// que el armado bloquee filas siempre en el mismo orden.
func (r *BundleRepo) ListByBundle(bundleID string) ([]*entity.BundleComponent, error) {
	query := `
		SELECT bundle_id, product_id, quantity, created_at
		FROM bundle_components WHERE bundle_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle components: %w", err)
	}
	defer rows.Close()
	var list []*entity.BundleComponent
	for rows.Next() {
		var c entity.BundleComponent
		if err := rows.Scan(&c.BundleID, &c.ProductID, &c.Quantity, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
