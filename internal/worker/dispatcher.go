package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/metrics"
)

// QueueLowStock es la cola Redis donde se encolan eventos de stock bajo.
const QueueLowStock = "stockwatch:low_stock"

var _ inventory.LowStockNotifier = (*Dispatcher)(nil)

// Dispatcher encola eventos de stock bajo en Redis para procesamiento
// asíncrono. Implementa inventory.LowStockNotifier.
type Dispatcher struct {
	rdb *redis.Client
}

// NewDispatcher construye el despachador sobre un cliente Redis ya conectado.
func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLowStock serializa el evento y lo empuja a la cola.
func (d *Dispatcher) EnqueueLowStock(ctx context.Context, event inventory.LowStockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal low stock event: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueLowStock, payload).Err(); err != nil {
		return fmt.Errorf("enqueue low stock event: %w", err)
	}
	metrics.LowStockJobsQueued.Inc()
	return nil
}
