package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stockwatch/internal/domain/entity"
	"github.com/tu-usuario/stockwatch/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega. Fila ausente se
// lee como cantidad 0 sin crearla.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), productID, warehouseID, "get stock")
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
// Punto de serialización de los ajustes concurrentes sobre la misma pareja.
// FOR UPDATE no bloquea filas inexistentes, así que una pareja sin fila se
// materializa primero en cero: dos primeros ajustes concurrentes compiten por
// el INSERT y el perdedor lee la cantidad ya confirmada, no cero. Solo tiene
// sentido dentro de una transacción; el rollback descarta la fila en cero si
// el ajuste termina rechazado.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("materialize stock row: %w", err)
	}
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), productID, warehouseID, "get stock for update")
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListBelowThreshold escanea las tripletas (stock, producto, bodega) de la
// empresa con cantidad por debajo del umbral del producto. El ORDER BY fijo
// hace determinista el orden de las alertas.
func (r *StockRepo) ListBelowThreshold(ctx context.Context, companyID string) ([]repository.LowStockRow, error) {
	query := `
		SELECT s.product_id, p.name, p.sku, s.warehouse_id, w.name, s.quantity, p.low_stock_threshold
		FROM stock s
		JOIN products   p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE w.company_id = $1
		  AND s.quantity < p.low_stock_threshold
		ORDER BY s.warehouse_id, s.product_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list below threshold: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU,
			&row.WarehouseID, &row.WarehouseName, &row.Quantity, &row.Threshold); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(row pgx.Row, productID, warehouseID, op string) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
