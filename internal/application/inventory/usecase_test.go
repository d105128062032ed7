package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/inventory"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

const (
	fxCompany   = "empresa-1"
	fxWarehouse = "bodega-central"
	fxProduct   = "producto-aceite"
	fxUser      = "bodeguero-1"
)

func newInventoryFixture(t *testing.T) (*inventory.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxWarehouse, CompanyID: fxCompany, Name: "Central", IsActive: true, CreatedAt: now}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: fxProduct, CompanyID: fxCompany, Code: "ACE-1000", Name: "Aceite 1L",
		UnitPrice: decimal.NewFromInt(9800), IsActive: true, CreatedAt: now,
	}))

	uc := inventory.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewBalanceRepository(store),
		memory.NewMovementRepository(store),
		productRepo,
		warehouseRepo,
	)
	return uc, store
}

// Un saldo inexistente se consulta como cero sin crear la fila.
func TestGetBalance_FilaInexistenteEsCero(t *testing.T) {
	uc, store := newInventoryFixture(t)

	resp, err := uc.GetBalance(context.Background(), fxCompany, fxWarehouse, fxProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.QuantityOnHand)
	assert.Nil(t, resp.LastMovementAt)

	bal, err := memory.NewBalanceRepository(store).Get(fxWarehouse, fxProduct)
	require.NoError(t, err)
	assert.Nil(t, bal, "consultar no debe crear la fila")
}

// El ajuste fija la cantidad absoluta y registra la diferencia como ADJUSTMENT.
func TestAdjustStock_RegistraDiferencia(t *testing.T) {
	uc, store := newInventoryFixture(t)
	ctx := context.Background()

	_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse, fxProduct, 12, time.Now())
	require.NoError(t, err)

	resp, err := uc.AdjustStock(ctx, fxCompany, fxUser, dto.AdjustStockRequest{
		WarehouseID: fxWarehouse, ProductID: fxProduct, QuantityOnHand: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.QuantityOnHand)

	movs, err := memory.NewMovementRepository(store).ListByWarehouse(fxWarehouse, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementCauseAdjustment, movs[0].Cause)
	assert.Equal(t, int64(-3), movs[0].Quantity, "la diferencia 9-12 queda como delta firmado")
	assert.Equal(t, fxUser, movs[0].CreatedBy)

	// Ajustar a la misma cantidad no genera movimiento.
	_, err = uc.AdjustStock(ctx, fxCompany, fxUser, dto.AdjustStockRequest{
		WarehouseID: fxWarehouse, ProductID: fxProduct, QuantityOnHand: 9,
	})
	require.NoError(t, err)
	movs, err = memory.NewMovementRepository(store).ListByWarehouse(fxWarehouse, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "un ajuste sin diferencia no debe dejar movimiento")
}

// La cantidad destino de un ajuste nunca puede ser negativa.
func TestAdjustStock_CantidadNegativaRechazada(t *testing.T) {
	uc, _ := newInventoryFixture(t)

	_, err := uc.AdjustStock(context.Background(), fxCompany, fxUser, dto.AdjustStockRequest{
		WarehouseID: fxWarehouse, ProductID: fxProduct, QuantityOnHand: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ListInventory combina el catálogo de la empresa con los saldos de la bodega.
func TestListInventory_CombinaCatalogoYSaldos(t *testing.T) {
	uc, store := newInventoryFixture(t)

	// Segundo producto sin stock.
	require.NoError(t, memory.NewProductRepository(store).Create(&entity.Product{
		ID: "producto-sal", CompanyID: fxCompany, Code: "SAL-500", Name: "Sal 500g",
		UnitPrice: decimal.NewFromInt(1500), IsActive: true, CreatedAt: time.Now(),
	}))
	_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse, fxProduct, 7, time.Now())
	require.NoError(t, err)

	items, err := uc.ListInventory(context.Background(), fxCompany, fxWarehouse, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]int64{}
	for _, item := range items {
		byID[item.ProductID] = item.QuantityOnHand
	}
	assert.Equal(t, int64(7), byID[fxProduct])
	assert.Equal(t, int64(0), byID["producto-sal"], "productos sin fila de saldo se listan en cero")
}

// Las consultas sobre bodegas ajenas o inexistentes se rechazan.
func TestInventory_BodegaAjena(t *testing.T) {
	uc, _ := newInventoryFixture(t)
	ctx := context.Background()

	_, err := uc.GetBalance(ctx, "otra-empresa", fxWarehouse, fxProduct)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListInventory(ctx, fxCompany, "bodega-fantasma", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
