package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/application/reports"
	"github.com/jhoicas/pos-bodegas/internal/application/returns"
	"github.com/jhoicas/pos-bodegas/internal/application/sales"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

const (
	fxCompany   = "empresa-1"
	fxWarehouse = "bodega-central"
	fxCashier   = "cajero-1"
)

type fixture struct {
	reportsUC *reports.UseCase
	salesUC   *sales.UseCase
	returnsUC *returns.UseCase
}

func newReportsFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	companyRepo := memory.NewCompanyRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	productRepo := memory.NewProductRepository(store)

	require.NoError(t, companyRepo.Create(&entity.Company{ID: fxCompany, Name: "Tienda Test", Status: "active", CreatedAt: now}))
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: fxWarehouse, CompanyID: fxCompany, Name: "Central", IsActive: true, CreatedAt: now}))
	for _, p := range []struct {
		id, code, name string
		stock          int64
	}{
		{"p-cafe", "CAF-001", "Café Molido 500g", 40},
		{"p-azucar", "AZU-001", "Azúcar 1kg", 25},
		{"p-arroz", "ARR-001", "Arroz 5kg", 60},
	} {
		require.NoError(t, productRepo.Create(&entity.Product{
			ID: p.id, CompanyID: fxCompany, Code: p.code, Name: p.name,
			UnitPrice: decimal.NewFromInt(1000), IsActive: true, CreatedAt: now,
		}))
		_, err := memory.NewBalanceRepository(store).SetQuantity(fxWarehouse, p.id, p.stock, now)
		require.NoError(t, err)
	}

	runner := memory.NewTxRunner(store)
	engine := ledger.NewEngine(runner)
	return &fixture{
		reportsUC: reports.NewUseCase(memory.NewReportRepository(store), warehouseRepo),
		salesUC:   sales.NewUseCase(runner, engine, productRepo, warehouseRepo, companyRepo, memory.NewSaleRepository(store)),
		returnsUC: returns.NewUseCase(runner, engine, productRepo, warehouseRepo, memory.NewReturnRepository(store)),
	}
}

func (f *fixture) sell(t *testing.T, productID string, qty int64, unitPrice int64) {
	t.Helper()
	_, err := f.salesUC.CreateSale(context.Background(), fxCompany, fxCashier, dto.CreateSaleRequest{
		WarehouseID: fxWarehouse,
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(unitPrice)}},
	})
	require.NoError(t, err)
}

func (f *fixture) returnItems(t *testing.T, productID string, qty int64, reason string) {
	t.Helper()
	_, err := f.returnsUC.CreateReturn(context.Background(), fxCompany, fxCashier, dto.CreateReturnRequest{
		WarehouseID: fxWarehouse,
		Reason:      reason,
		Items:       []dto.ReturnItemRequest{{ProductID: productID, Quantity: qty}},
	})
	require.NoError(t, err)
}

// El reporte POS del día suma las ventas y agrupa devoluciones por motivo,
// reportando los motivos vacíos como "Unspecified".
func TestPosReport_TotalesYMotivos(t *testing.T) {
	f := newReportsFixture(t)

	f.sell(t, "p-cafe", 2, 18900)  // 37800
	f.sell(t, "p-azucar", 3, 4500) // 13500
	f.returnItems(t, "p-cafe", 1, "producto dañado")
	f.returnItems(t, "p-cafe", 1, "producto dañado")
	f.returnItems(t, "p-azucar", 1, "")

	report, err := f.reportsUC.PosReport(context.Background(), fxCompany, fxWarehouse, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "51300.00", report.TotalSales)
	assert.Equal(t, int64(2), report.SalesCount)
	assert.Equal(t, time.Now().Format("2006-01-02"), report.Date)

	byReason := map[string]int64{}
	for _, r := range report.ReturnsByReason {
		byReason[r.Reason] = r.Count
	}
	assert.Equal(t, int64(2), byReason["producto dañado"])
	assert.Equal(t, int64(1), byReason["Unspecified"],
		"los motivos vacíos se agrupan como Unspecified")
}

// Un día sin actividad reporta ceros, no error.
func TestPosReport_DiaSinActividad(t *testing.T) {
	f := newReportsFixture(t)

	report, err := f.reportsUC.PosReport(context.Background(), fxCompany, fxWarehouse, time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, "0.00", report.TotalSales)
	assert.Equal(t, int64(0), report.SalesCount)
	assert.Empty(t, report.ReturnsByReason)
}

// El reporte de bodega suma unidades y ordena el top por saldo descendente.
func TestWarehouseReport_TopStock(t *testing.T) {
	f := newReportsFixture(t)

	report, err := f.reportsUC.WarehouseReport(context.Background(), fxCompany, fxWarehouse, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(125), report.TotalUnits, "40+25+60")
	require.Len(t, report.TopStock, 2, "el límite recorta el top")
	assert.Equal(t, "p-arroz", report.TopStock[0].ProductID)
	assert.Equal(t, int64(60), report.TopStock[0].QuantityOnHand)
	assert.Equal(t, "p-cafe", report.TopStock[1].ProductID)
}

// Bodegas ajenas o inexistentes se rechazan.
func TestReports_BodegaAjena(t *testing.T) {
	f := newReportsFixture(t)
	ctx := context.Background()

	_, err := f.reportsUC.PosReport(ctx, "otra-empresa", fxWarehouse, time.Now())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.reportsUC.WarehouseReport(ctx, fxCompany, "bodega-fantasma", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
