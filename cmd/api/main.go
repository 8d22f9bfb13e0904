package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/application/usecase"
	"github.com/tu-usuario/stockwatch/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stockwatch/internal/interfaces/http"
	"github.com/tu-usuario/stockwatch/internal/worker"
	"github.com/tu-usuario/stockwatch/pkg/config"
	"github.com/tu-usuario/stockwatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sku_scope", cfg.Inventory.SKUScope).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	bundleRepo := postgres.NewBundleRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cola de notificaciones de stock bajo (opcional: REDIS_ADDR vacío la apaga).
	var notifier inventory.LowStockNotifier
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	var workerPool *worker.Pool
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		notifier = worker.NewDispatcher(rdb)
		workerPool = worker.NewPool(rdb, log, cfg.Redis.Workers, nil)
		workerPool.Start(workerCtx)
		log.Info().Str("addr", cfg.Redis.Addr).Int("workers", cfg.Redis.Workers).Msg("cola de stock bajo habilitada")
	}

	createProductUC := inventory.NewCreateProductUseCase(txRunner, productRepo, warehouseRepo, cfg.Inventory.SKUScope)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, warehouseRepo, notifier, log)
	velocityUC := inventory.NewSalesVelocityUseCase(movementRepo)
	lowStockUC := inventory.NewLowStockAlertUseCase(txRunner, cfg.Inventory.AlertWindowDays)
	assemblyUC := inventory.NewBundleAssemblyUseCase(txRunner, productRepo, warehouseRepo, bundleRepo)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	bundleUC := usecase.NewBundleUseCase(bundleRepo, productRepo)
	movementUC := usecase.NewMovementUseCase(movementRepo, productRepo, warehouseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockWatch API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		WarehouseUC:   warehouseUC,
		ProductUC:     productUC,
		SupplierUC:    supplierUC,
		BundleUC:      bundleUC,
		MovementUC:    movementUC,
		CreateProduct: createProductUC,
		AdjustStock:   adjustStockUC,
		Velocity:      velocityUC,
		LowStock:      lowStockUC,
		Assembly:      assemblyUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	stopWorkers()
	if workerPool != nil {
		workerPool.Wait()
	}

	log.Info().Msg("aplicación detenida")
}
