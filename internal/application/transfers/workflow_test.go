package transfers_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/receipts"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/application/transfers"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa con dos bodegas y un producto, sobre el backend en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	fxCompany    = "empresa-1"
	fxWarehouse1 = "bodega-central"
	fxWarehouse2 = "bodega-norte"
	fxProduct    = "producto-cafe"
	fxUser       = "usuario-1"
)

type fixture struct {
	store     *memory.Store
	engine    *ledger.Engine
	workflow  *transfers.Workflow
	salesUC   *sales.UseCase
	receiptUC *receipts.UseCase
}

func newFixture(t *testing.T, initialStock int64) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	companyRepo := memory.NewCompanyRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)
	supplierRepo := memory.NewSupplierRepository(store)

	require.NoError(t, companyRepo.Create(&entity.Company{
		ID: fxCompany, Name: "Distribuidora Test", Status: "active", CreatedAt: now,
	}))
	for _, id := range []string{fxWarehouse1, fxWarehouse2} {
		require.NoError(t, warehouseRepo.Create(&entity.Warehouse{
			ID: id, CompanyID: fxCompany, Name: id, IsActive: true, CreatedAt: now,
		}))
	}
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: fxProduct, CompanyID: fxCompany, Code: "CAFE-500", Name: "Café 500g",
		UnitPrice: decimal.NewFromInt(12000), IsActive: true, CreatedAt: now,
	}))

	if initialStock > 0 {
		_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse1, fxProduct, initialStock, now)
		require.NoError(t, err)
	}

	runner := memory.NewTxRunner(store)
	engine := ledger.NewEngine(runner)
	return &fixture{
		store:    store,
		engine:   engine,
		workflow: transfers.NewWorkflow(runner, engine, warehouseRepo, productRepo, memory.NewTransferRepository(store)),
		salesUC: sales.NewUseCase(runner, engine, productRepo, warehouseRepo, companyRepo,
			memory.NewSaleRepository(store)),
		receiptUC: receipts.NewUseCase(runner, engine, productRepo, warehouseRepo, supplierRepo,
			memory.NewReceiptRepository(store)),
	}
}

func (f *fixture) onHand(t *testing.T, warehouseID string) int64 {
	t.Helper()
	bal, err := memory.NewBalanceRepository(f.store).Get(warehouseID, fxProduct)
	require.NoError(t, err)
	if bal == nil {
		return 0
	}
	return bal.QuantityOnHand
}

func (f *fixture) createTransfer(t *testing.T, qty int64) *dto.CreateTransferResponse {
	t.Helper()
	resp, err := f.workflow.Create(context.Background(), fxCompany, fxUser, dto.CreateTransferRequest{
		FromWarehouseID: fxWarehouse1,
		ToWarehouseID:   fxWarehouse2,
		Items:           []dto.TransferItemRequest{{ProductID: fxProduct, Quantity: qty}},
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: venta, recepción y traslado aprobado, verificando el saldo
// después de cada paso y los movimientos del traslado.
func TestWorkflow_FlujoCompleto(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	// Venta de 4 unidades: 10 -> 6.
	_, err := f.salesUC.CreateSale(ctx, fxCompany, fxUser, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse1,
		Items: []dto.SaleItemRequest{
			{ProductID: fxProduct, Quantity: 4, UnitPrice: decimal.NewFromInt(12000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.onHand(t, fxWarehouse1))

	// Recepción de 5 unidades: 6 -> 11.
	_, err = f.receiptUC.Receive(ctx, fxCompany, fxUser, dto.ReceiveStockRequest{
		WarehouseID: fxWarehouse1, ProductID: fxProduct, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), f.onHand(t, fxWarehouse1))

	// Traslado de 3 unidades a la bodega norte.
	created := f.createTransfer(t, 3)
	assert.Equal(t, entity.TransferStatusPending, created.Status)
	assert.Equal(t, int64(11), f.onHand(t, fxWarehouse1),
		"crear el traslado no debe mover inventario")

	decision, err := f.workflow.Approve(ctx, fxCompany, fxUser, created.TransferID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, decision.Status)
	assert.Equal(t, int64(8), f.onHand(t, fxWarehouse1))
	assert.Equal(t, int64(3), f.onHand(t, fxWarehouse2))

	// Los dos movimientos del traslado comparten la correlación con su documento.
	movements, err := memory.NewMovementRepository(f.store).ListByCorrelation(created.TransferID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	causes := []string{movements[0].Cause, movements[1].Cause}
	assert.Contains(t, causes, entity.MovementCauseTransferOut)
	assert.Contains(t, causes, entity.MovementCauseTransferIn)

	// COMPLETED es terminal: ni aprobar ni rechazar de nuevo.
	_, err = f.workflow.Approve(ctx, fxCompany, fxUser, created.TransferID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.workflow.Reject(ctx, fxCompany, fxUser, created.TransferID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Aprobar con stock insuficiente falla y deja el traslado PENDING; tras una
// recepción la aprobación puede reintentarse.
func TestWorkflow_AprobarSinStockQuedaPendiente(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	created := f.createTransfer(t, 5)

	_, err := f.workflow.Approve(ctx, fxCompany, fxUser, created.TransferID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.onHand(t, fxWarehouse1), "el rechazo del lote no debe tocar saldos")
	assert.Equal(t, int64(0), f.onHand(t, fxWarehouse2))

	got, err := f.workflow.Get(ctx, fxCompany, created.TransferID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, got.Status,
		"el traslado debe seguir PENDING tras el fallo de stock")

	// Llega mercancía y la aprobación procede.
	_, err = f.receiptUC.Receive(ctx, fxCompany, fxUser, dto.ReceiveStockRequest{
		WarehouseID: fxWarehouse1, ProductID: fxProduct, Quantity: 10,
	})
	require.NoError(t, err)

	decision, err := f.workflow.Approve(ctx, fxCompany, fxUser, created.TransferID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, decision.Status)
	assert.Equal(t, int64(7), f.onHand(t, fxWarehouse1))
	assert.Equal(t, int64(5), f.onHand(t, fxWarehouse2))
}

// Rechazar un traslado PENDING lo cierra sin mover inventario.
func TestWorkflow_RechazarNoMueveInventario(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	created := f.createTransfer(t, 4)
	decision, err := f.workflow.Reject(ctx, fxCompany, fxUser, created.TransferID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusRejected, decision.Status)
	assert.Equal(t, int64(10), f.onHand(t, fxWarehouse1))

	movements, err := memory.NewMovementRepository(f.store).ListByCorrelation(created.TransferID)
	require.NoError(t, err)
	assert.Empty(t, movements, "un traslado rechazado no debe dejar movimientos")

	// REJECTED también es terminal.
	_, err = f.workflow.Approve(ctx, fxCompany, fxUser, created.TransferID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Reglas de creación: bodegas distintas, existentes y de la misma empresa,
// líneas con cantidad positiva.
func TestWorkflow_CreateValidaciones(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	// Misma bodega en origen y destino.
	_, err := f.workflow.Create(ctx, fxCompany, fxUser, dto.CreateTransferRequest{
		FromWarehouseID: fxWarehouse1,
		ToWarehouseID:   fxWarehouse1,
		Items:           []dto.TransferItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Bodega inexistente.
	_, err = f.workflow.Create(ctx, fxCompany, fxUser, dto.CreateTransferRequest{
		FromWarehouseID: fxWarehouse1,
		ToWarehouseID:   "bodega-fantasma",
		Items:           []dto.TransferItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	_, err = f.workflow.Create(ctx, fxCompany, fxUser, dto.CreateTransferRequest{
		FromWarehouseID: fxWarehouse1,
		ToWarehouseID:   fxWarehouse2,
		Items:           []dto.TransferItemRequest{{ProductID: fxProduct, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Empresa ajena: las bodegas no le pertenecen.
	_, err = f.workflow.Create(ctx, "otra-empresa", fxUser, dto.CreateTransferRequest{
		FromWarehouseID: fxWarehouse1,
		ToWarehouseID:   fxWarehouse2,
		Items:           []dto.TransferItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Consultar un traslado de otra empresa no debe filtrar información.
	created := f.createTransfer(t, 1)
	_, err = f.workflow.Get(ctx, "otra-empresa", created.TransferID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
