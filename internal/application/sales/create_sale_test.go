package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

const (
	fxCompany   = "empresa-1"
	fxWarehouse = "bodega-central"
	fxProduct   = "producto-azucar"
	fxCashier   = "cajero-1"
)

// newSalesFixture arma el caso de uso de ventas sobre el backend en memoria
// con un producto y el stock inicial indicado.
func newSalesFixture(t *testing.T, initialStock int64) (*sales.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	companyRepo := memory.NewCompanyRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)

	require.NoError(t, companyRepo.Create(&entity.Company{ID: fxCompany, Name: "Tienda Test", Status: "active", CreatedAt: now}))
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxWarehouse, CompanyID: fxCompany, Name: "Central", IsActive: true, CreatedAt: now}))
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: fxProduct, CompanyID: fxCompany, Code: "AZU-1000", Name: "Azúcar 1kg",
		UnitPrice: decimal.NewFromInt(4500), TaxRate: decimal.NewFromFloat(19), IsActive: true, CreatedAt: now,
	}))

	_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse, fxProduct, initialStock, now)
	require.NoError(t, err)

	runner := memory.NewTxRunner(store)
	engine := ledger.NewEngine(runner)
	uc := sales.NewUseCase(runner, engine, productRepo, warehouseRepo, companyRepo, memory.NewSaleRepository(store))
	return uc, store
}

func stockOnHand(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	bal, err := memory.NewBalanceRepository(store).Get(fxWarehouse, fxProduct)
	require.NoError(t, err)
	require.NotNil(t, bal)
	return bal.QuantityOnHand
}

// Una venta descuenta stock, persiste cabecera y líneas, y deriva los totales
// no informados.
func TestCreateSale_DescuentaYPersiste(t *testing.T) {
	uc, store := newSalesFixture(t, 10)

	resp, err := uc.CreateSale(context.Background(), fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items: []dto.SaleItemRequest{
			{
				ProductID: fxProduct, Quantity: 4,
				UnitPrice: decimal.NewFromInt(4500),
				TaxAmount: decimal.NewFromInt(3420),
			},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SaleID)
	assert.True(t, len(resp.SaleNumber) > 4 && resp.SaleNumber[:4] == "POS-",
		"el número de venta debe generarse con prefijo POS-")

	assert.Equal(t, int64(6), stockOnHand(t, store))

	sale, err := uc.GetSale(context.Background(), fxCompany, resp.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, fxCashier, sale.CashierID, "sin cashier_id explícito se usa el usuario autenticado")
	assert.True(t, sale.GrossAmount.Equal(decimal.NewFromInt(18000)), "bruto = 4 x 4500")
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(21420)), "total = bruto + impuestos")

	// El movimiento SALE queda correlacionado con la venta.
	movements, err := memory.NewMovementRepository(store).ListByCorrelation(resp.SaleID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementCauseSale, movements[0].Cause)
	assert.Equal(t, int64(-4), movements[0].Quantity)
}

// Stock insuficiente rechaza la venta completa: ni cabecera ni movimientos.
func TestCreateSale_StockInsuficienteNoDejaNada(t *testing.T) {
	uc, store := newSalesFixture(t, 3)

	_, err := uc.CreateSale(context.Background(), fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items: []dto.SaleItemRequest{
			{ProductID: fxProduct, Quantity: 5, UnitPrice: decimal.NewFromInt(4500)},
		},
	})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, fxProduct, insufficient.ProductID)

	assert.Equal(t, int64(3), stockOnHand(t, store))
	salesList, err := memory.NewSaleRepository(store).ListByWarehouse(fxWarehouse, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, salesList, "la venta rechazada no debe quedar persistida")
}

// Varias líneas sobre el mismo producto se acumulan antes de verificar stock.
func TestCreateSale_LineasMismoProductoSeAcumulan(t *testing.T) {
	uc, store := newSalesFixture(t, 5)

	_, err := uc.CreateSale(context.Background(), fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items: []dto.SaleItemRequest{
			{ProductID: fxProduct, Quantity: 3, UnitPrice: decimal.NewFromInt(4500)},
			{ProductID: fxProduct, Quantity: 3, UnitPrice: decimal.NewFromInt(4500)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"3+3 sobre saldo 5 debe rechazarse aunque cada línea quepa por separado")
	assert.Equal(t, int64(5), stockOnHand(t, store))
}

// Validaciones de entrada y de pertenencia.
func TestCreateSale_Validaciones(t *testing.T) {
	uc, _ := newSalesFixture(t, 10)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, fxCompany, fxCashier, dto.CreateSaleRequest{WarehouseID: fxWarehouse})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = uc.CreateSale(ctx, fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.SaleItemRequest{{ProductID: fxProduct, Quantity: -1, UnitPrice: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	_, err = uc.CreateSale(ctx, "otra-empresa", fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.SaleItemRequest{{ProductID: fxProduct, Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "bodega de otra empresa")

	_, err = uc.CreateSale(ctx, fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: "bodega-fantasma",
		Items:       []dto.SaleItemRequest{{ProductID: fxProduct, Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")
}

// Dos ventas concurrentes que juntas exceden el saldo: exactamente una gana y
// la otra recibe stock insuficiente, sin dejar el saldo negativo ni parcial.
func TestCreateSale_VentasConcurrentesSoloUnaGana(t *testing.T) {
	uc, store := newSalesFixture(t, 10)

	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.CreateSale(context.Background(), fxCompany, fxCashier, dto.CreateSaleRequest{
				WarehouseID: fxWarehouse,
				Items: []dto.SaleItemRequest{
					{ProductID: fxProduct, Quantity: 6, UnitPrice: decimal.NewFromInt(4500)},
				},
			})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado en venta concurrente: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe completarse")
	assert.Equal(t, 1, insufficient, "la otra debe fallar por stock insuficiente")

	assert.Equal(t, int64(4), stockOnHand(t, store), "solo la venta ganadora descuenta")

	salesList, err := memory.NewSaleRepository(store).ListByWarehouse(fxWarehouse, 0, 0)
	require.NoError(t, err)
	assert.Len(t, salesList, 1, "solo la venta ganadora queda persistida")
}
