package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	BundleUC      *usecase.BundleUseCase
	MovementUC    *usecase.MovementUseCase
	CreateProduct *inventory.CreateProductUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	Velocity      *inventory.SalesVelocityUseCase
	LowStock      *inventory.LowStockAlertUseCase
	Assembly      *inventory.BundleAssemblyUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido), incluye composición de bundles y proveedor primario
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CreateProduct, deps.BundleUC, deps.SupplierUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/supplier", productHandler.SetSupplier)
	products.Post("/:id/components", productHandler.AddComponent)
	products.Get("/:id/components", productHandler.ListComponents)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.AdjustStock, deps.Velocity, deps.LowStock, deps.Assembly,
		deps.ProductUC, deps.MovementUC,
	)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/velocity/:productID", inventoryHandler.Velocity)
	invGroup.Get("/low-stock-alerts", inventoryHandler.LowStockAlerts)
	invGroup.Post("/bundles/assemble", inventoryHandler.Assemble)
	invGroup.Post("/bundles/disassemble", inventoryHandler.Disassemble)
	invGroup.Get("/movements/product/:productID", inventoryHandler.ProductMovements)
	invGroup.Get("/movements/warehouse/:warehouseID", inventoryHandler.WarehouseMovements)
}
