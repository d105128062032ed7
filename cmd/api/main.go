package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pos-bodegas/internal/application/auth"
	"github.com/jhoicas/pos-bodegas/internal/application/inventory"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/receipts"
	"github.com/jhoicas/pos-bodegas/internal/application/reports"
	"github.com/jhoicas/pos-bodegas/internal/application/returns"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/application/transfers"
	"github.com/jhoicas/pos-bodegas/internal/application/usecase"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-bodegas/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-bodegas/internal/interfaces/http"
	"github.com/jhoicas/pos-bodegas/pkg/config"
	"github.com/jhoicas/pos-bodegas/pkg/logger"
	"github.com/jhoicas/pos-bodegas/pkg/metrics"
)

// storageDeps agrupa los puertos de persistencia que dependen del backend
// elegido (postgres o memory).
type storageDeps struct {
	txRunner       ledger.TxRunner
	balanceReader  repository.BalanceRepository
	movementReader repository.MovementRepository
	companyRepo    repository.CompanyRepository
	warehouseRepo  repository.WarehouseRepository
	productRepo    repository.ProductRepository
	supplierRepo   repository.SupplierRepository
	userRepo       repository.UserRepository
	saleReader     repository.SaleRepository
	returnReader   repository.ReturnRepository
	receiptReader  repository.ReceiptRepository
	transferReader repository.TransferRepository
	reportRepo     repository.ReportRepository
	close          func()
}

func postgresDeps(ctx context.Context, cfg config.DBConfig) (*storageDeps, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &storageDeps{
		txRunner:       postgres.NewTxRunner(pool),
		balanceReader:  postgres.NewBalanceRepository(pool),
		movementReader: postgres.NewMovementRepository(pool),
		companyRepo:    postgres.NewCompanyRepository(pool),
		warehouseRepo:  postgres.NewWarehouseRepository(pool),
		productRepo:    postgres.NewProductRepository(pool),
		supplierRepo:   postgres.NewSupplierRepository(pool),
		userRepo:       postgres.NewUserRepository(pool),
		saleReader:     postgres.NewSaleRepository(pool),
		returnReader:   postgres.NewReturnRepository(pool),
		receiptReader:  postgres.NewReceiptRepository(pool),
		transferReader: postgres.NewTransferRepository(pool),
		reportRepo:     postgres.NewReportRepository(pool),
		close:          pool.Close,
	}, nil
}

// memoryDeps arma el backend en memoria (modo demo) con datos de ejemplo.
func memoryDeps() (*storageDeps, error) {
	store := memory.NewStore()
	if err := memory.Seed(store); err != nil {
		return nil, err
	}
	return &storageDeps{
		txRunner:       memory.NewTxRunner(store),
		balanceReader:  memory.NewBalanceRepository(store),
		movementReader: memory.NewMovementRepository(store),
		companyRepo:    memory.NewCompanyRepository(store),
		warehouseRepo:  memory.NewWarehouseRepository(store),
		productRepo:    memory.NewProductRepository(store),
		supplierRepo:   memory.NewSupplierRepository(store),
		userRepo:       memory.NewUserRepository(store),
		saleReader:     memory.NewSaleRepository(store),
		returnReader:   memory.NewReturnRepository(store),
		receiptReader:  memory.NewReceiptRepository(store),
		transferReader: memory.NewTransferRepository(store),
		reportRepo:     memory.NewReportRepository(store),
		close:          func() {},
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var deps *storageDeps
	switch cfg.App.Storage {
	case "memory":
		deps, err = memoryDeps()
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar almacenamiento en memoria")
		}
		log.Info().
			Str("company", memory.DemoCompanyID).
			Str("admin", memory.DemoAdminEmail).
			Msg("modo demo: datos de ejemplo cargados")
	default:
		deps, err = postgresDeps(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer deps.close()

	engine := ledger.NewEngine(deps.txRunner)

	companyUC := usecase.NewCompanyUseCase(deps.companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(deps.warehouseRepo)
	productUC := usecase.NewProductUseCase(deps.productRepo)
	supplierUC := usecase.NewSupplierUseCase(deps.supplierRepo)

	inventoryUC := inventory.NewUseCase(deps.txRunner, deps.balanceReader, deps.movementReader, deps.productRepo, deps.warehouseRepo)
	receiptsUC := receipts.NewUseCase(deps.txRunner, engine, deps.productRepo, deps.warehouseRepo, deps.supplierRepo, deps.receiptReader)
	salesUC := sales.NewUseCase(deps.txRunner, engine, deps.productRepo, deps.warehouseRepo, deps.companyRepo, deps.saleReader)
	returnsUC := returns.NewUseCase(deps.txRunner, engine, deps.productRepo, deps.warehouseRepo, deps.returnReader)
	transfersWF := transfers.NewWorkflow(deps.txRunner, engine, deps.warehouseRepo, deps.productRepo, deps.transferReader)
	reportsUC := reports.NewUseCase(deps.reportRepo, deps.warehouseRepo)

	authUC := auth.NewUseCase(deps.userRepo, deps.companyRepo, deps.warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: tiquete de venta POS
	ticketGen := infrapdf.NewTicketGenerator()

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("servidor de métricas finalizado")
			}
		}()
	}

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
		Title:    "POS Bodegas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		InventoryUC: inventoryUC,
		ReceiptsUC:  receiptsUC,
		SalesUC:     salesUC,
		ReturnsUC:   returnsUC,
		TransfersWF: transfersWF,
		ReportsUC:   reportsUC,
		AuthUC:      authUC,
		TicketGen:   ticketGen,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
