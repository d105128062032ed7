package returns_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/returns"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

const (
	fxCompany   = "empresa-1"
	fxWarehouse = "bodega-central"
	fxProduct   = "producto-arroz"
	fxCashier   = "cajero-1"
)

func newReturnsFixture(t *testing.T, initialStock int64) (*returns.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxWarehouse, CompanyID: fxCompany, Name: "Central", IsActive: true, CreatedAt: now}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: fxProduct, CompanyID: fxCompany, Code: "ARR-500", Name: "Arroz 500g",
		UnitPrice: decimal.NewFromInt(3200), IsActive: true, CreatedAt: now,
	}))

	if initialStock > 0 {
		_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse, fxProduct, initialStock, now)
		require.NoError(t, err)
	}

	runner := memory.NewTxRunner(store)
	engine := ledger.NewEngine(runner)
	uc := returns.NewUseCase(runner, engine, productRepo, warehouseRepo, memory.NewReturnRepository(store))
	return uc, store
}

// Una devolución reingresa stock y queda correlacionada con su movimiento RETURN.
func TestCreateReturn_ReingresaStock(t *testing.T) {
	uc, store := newReturnsFixture(t, 6)
	price := decimal.NewFromInt(3200)

	resp, err := uc.CreateReturn(context.Background(), fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Reason:      "producto dañado",
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 2, UnitPrice: &price}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ReturnID)
	assert.Equal(t, "RET-", resp.ReturnNumber[:4])

	bal, err := memory.NewBalanceRepository(store).Get(fxWarehouse, fxProduct)
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.Equal(t, int64(8), bal.QuantityOnHand)

	movements, err := memory.NewMovementRepository(store).ListByCorrelation(resp.ReturnID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementCauseReturn, movements[0].Cause)
	assert.Equal(t, int64(2), movements[0].Quantity)
}

// Una devolución funciona aunque la fila de saldo no exista (todo el stock
// vendido): el delta positivo la crea.
func TestCreateReturn_SinFilaDeSaldo(t *testing.T) {
	uc, store := newReturnsFixture(t, 0)

	_, err := uc.CreateReturn(context.Background(), fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 3}},
	})
	require.NoError(t, err)

	bal, err := memory.NewBalanceRepository(store).Get(fxWarehouse, fxProduct)
	require.NoError(t, err)
	require.NotNil(t, bal)
	assert.Equal(t, int64(3), bal.QuantityOnHand)
}

// El motivo es texto libre y se lista tal cual (vacío incluido).
func TestCreateReturn_ListaConMotivo(t *testing.T) {
	uc, _ := newReturnsFixture(t, 10)
	ctx := context.Background()

	_, err := uc.CreateReturn(ctx, fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Reason:      "talla equivocada",
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CreateReturn(ctx, fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	require.NoError(t, err)

	list, err := uc.ListReturns(ctx, fxCompany, fxWarehouse, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	reasons := []string{list[0].Reason, list[1].Reason}
	assert.Contains(t, reasons, "talla equivocada")
	assert.Contains(t, reasons, "")
}

// Validaciones de entrada.
func TestCreateReturn_Validaciones(t *testing.T) {
	uc, _ := newReturnsFixture(t, 10)
	ctx := context.Background()

	_, err := uc.CreateReturn(ctx, fxCompany, fxCashier, dto.CreateReturnRequest{WarehouseID: fxWarehouse})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "devolución sin líneas")

	_, err = uc.CreateReturn(ctx, fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.CreateReturn(ctx, "otra-empresa", fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.ReturnItemRequest{{ProductID: fxProduct, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "bodega de otra empresa")
}
