package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-bodegas/internal/application/auth"
	"github.com/jhoicas/pos-bodegas/internal/application/inventory"
	"github.com/jhoicas/pos-bodegas/internal/application/receipts"
	"github.com/jhoicas/pos-bodegas/internal/application/reports"
	"github.com/jhoicas/pos-bodegas/internal/application/returns"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/application/transfers"
	"github.com/jhoicas/pos-bodegas/internal/application/usecase"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	InventoryUC *inventory.UseCase
	ReceiptsUC  *receipts.UseCase
	SalesUC     *sales.UseCase
	ReturnsUC   *returns.UseCase
	TransfersWF *transfers.Workflow
	ReportsUC   *reports.UseCase
	AuthUC      *auth.UseCase
	TicketGen   sales.TicketPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Inventory: saldos, movimientos, recepciones y ajustes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReceiptsUC)
	invGroup.Get("/", inventoryHandler.ListInventory)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/receipts", inventoryHandler.ListReceipts)
	invGroup.Post("/receive", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Receive)
	invGroup.Post("/adjust", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.Adjust)
	invGroup.Get("/:warehouseId/:productId", inventoryHandler.GetBalance)

	// Sales (protegido, POS)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC, deps.TicketGen)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.Ticket)

	// Returns (protegido)
	returnsGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ReturnsUC)
	returnsGroup.Post("/", returnHandler.Create)
	returnsGroup.Get("/", returnHandler.List)

	// Transfers (protegido)
	transfersGroup := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransfersWF)
	transfersGroup.Post("/", transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), transferHandler.Approve)
	transfersGroup.Post("/:id/reject", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), transferHandler.Reject)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/pos", reportHandler.Pos)
	reportsGroup.Get("/warehouse", reportHandler.Warehouse)
}
