package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockwatch/internal/application/dto"
	"github.com/tu-usuario/stockwatch/internal/application/inventory"
	"github.com/tu-usuario/stockwatch/internal/application/usecase"
)

// InventoryHandler maneja las peticiones HTTP de stock (protegido): ajustes,
// velocidad de ventas, alertas de reposición, armado de bundles y auditoría.
type InventoryHandler struct {
	adjustUC   *inventory.AdjustStockUseCase
	velocityUC *inventory.SalesVelocityUseCase
	alertsUC   *inventory.LowStockAlertUseCase
	assemblyUC *inventory.BundleAssemblyUseCase
	productUC  *usecase.ProductUseCase
	movementUC *usecase.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjustUC *inventory.AdjustStockUseCase,
	velocityUC *inventory.SalesVelocityUseCase,
	alertsUC *inventory.LowStockAlertUseCase,
	assemblyUC *inventory.BundleAssemblyUseCase,
	productUC *usecase.ProductUseCase,
	movementUC *usecase.MovementUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		adjustUC:   adjustUC,
		velocityUC: velocityUC,
		alertsUC:   alertsUC,
		assemblyUC: assemblyUC,
		productUC:  productUC,
		movementUC: movementUC,
	}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto en una bodega
// @Description  Aplica un delta con signo de forma atómica y registra el
//
//	movimiento de auditoría. Nunca deja la cantidad en negativo.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, warehouse_id, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQuantity, err := h.adjustUC.Adjust(c.Context(), companyID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{NewQuantity: newQuantity})
}

// Velocity godoc
// @Summary      Velocidad de ventas de un producto
// @Description  Unidades vendidas y promedio diario en la ventana (default 30 días).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        window_days  query  int   false  "Ventana en días (default 30)"
// @Success      200  {object}  dto.SalesVelocityDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/velocity/{productID} [get]
func (h *InventoryHandler) Velocity(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	productID := c.Params("productID")

	// Verificar pertenencia antes de agregar ventas.
	if _, err := h.productUC.GetByID(companyID, productID); err != nil {
		return respondError(c, err)
	}

	windowDays := c.QueryInt("window_days", 30)
	velocity, err := h.velocityUC.RecentSales(c.Context(), productID, windowDays)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(velocity)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo con predicción de quiebre
// @Description  Escanea todo el inventario de la empresa sobre una foto
//
//	consistente y devuelve, por cada (producto, bodega) bajo el umbral con
//	demanda reciente, los días estimados hasta el quiebre y el proveedor
//	primario para reordenar.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock-alerts [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.alertsUC.Generate(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Assemble godoc
// @Summary      Armar unidades de un bundle
// @Description  Consume componentes y acredita el bundle en la misma bodega,
//
//	todo en una transacción.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssembleBundleRequest  true  "bundle_id, warehouse_id, count"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/bundles/assemble [post]
func (h *InventoryHandler) Assemble(c *fiber.Ctx) error {
	return h.convertBundle(c, h.assemblyUC.Assemble, "bundle armado")
}

// Disassemble godoc
// @Summary      Desarmar unidades de un bundle
// @Description  Operación inversa al armado: debita el bundle y acredita sus
//
//	componentes en la misma bodega.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssembleBundleRequest  true  "bundle_id, warehouse_id, count"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/bundles/disassemble [post]
func (h *InventoryHandler) Disassemble(c *fiber.Ctx) error {
	return h.convertBundle(c, h.assemblyUC.Disassemble, "bundle desarmado")
}

func (h *InventoryHandler) convertBundle(
	c *fiber.Ctx,
	fn func(ctx context.Context, companyID, userID string, in dto.AssembleBundleRequest) error,
	msg string,
) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AssembleBundleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := fn(c.Context(), companyID, userID, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// ProductMovements godoc
// @Summary      Auditoría de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        from       query  string  false  "Fecha inicial (RFC3339)"
// @Param        to         query  string  false  "Fecha final (RFC3339)"
// @Param        limit      query  int     false  "Máximo de filas (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/product/{productID} [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas, usar RFC3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.movementUC.ListByProduct(companyID, c.Params("productID"), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// WarehouseMovements godoc
// @Summary      Auditoría de movimientos de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseID  path   string  true   "ID de la bodega"
// @Param        from         query  string  false  "Fecha inicial (RFC3339)"
// @Param        to           query  string  false  "Fecha final (RFC3339)"
// @Param        limit        query  int     false  "Máximo de filas (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/warehouse/{warehouseID} [get]
func (h *InventoryHandler) WarehouseMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas, usar RFC3339"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.movementUC.ListByWarehouse(companyID, c.Params("warehouseID"), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}
