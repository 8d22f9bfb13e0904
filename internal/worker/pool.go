package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/pkg/logger"
)

// Handler procesa un evento de stock bajo ya deserializado.
type Handler func(ctx context.Context, event inventory.LowStockEvent) error

// Pool consume la cola de stock bajo con N workers concurrentes.
type Pool struct {
	rdb     *redis.Client
	log     *logger.Logger
	handler Handler
	size    int
	wg      sync.WaitGroup
}

// NewPool construye el pool. Si handler es nil se usa un handler que solo
// registra el evento en el log.
func NewPool(rdb *redis.Client, log *logger.Logger, size int, handler Handler) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{rdb: rdb, log: log, handler: handler, size: size}
	if p.handler == nil {
		p.handler = p.logEvent
	}
	return p
}

// Start lanza los workers. Cada uno hace BRPOP bloqueante con timeout corto
// para poder observar la cancelación del contexto.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Wait bloquea hasta que todos los workers terminen.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()
	log.Info().Msg("worker de stock bajo iniciado")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker de stock bajo detenido")
			return
		default:
		}
		res, err := p.rdb.BRPop(ctx, 2*time.Second, QueueLowStock).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Msg("error leyendo cola de stock bajo")
			time.Sleep(time.Second)
			continue
		}
		// BRPOP devuelve [clave, valor].
		if len(res) != 2 {
			continue
		}
		var event inventory.LowStockEvent
		if err := json.Unmarshal([]byte(res[1]), &event); err != nil {
			log.Error().Err(err).Str("payload", res[1]).Msg("evento de stock bajo inválido")
			continue
		}
		if err := p.handler(ctx, event); err != nil {
			log.Error().Err(err).
				Str("product_id", event.ProductID).
				Str("warehouse_id", event.WarehouseID).
				Msg("error procesando evento de stock bajo")
		}
	}
}

func (p *Pool) logEvent(_ context.Context, event inventory.LowStockEvent) error {
	p.log.Warn().
		Str("product_id", event.ProductID).
		Str("warehouse_id", event.WarehouseID).
		Int64("quantity", event.Quantity).
		Int64("threshold", event.Threshold).
		Msg("stock por debajo del umbral")
	return nil
}
