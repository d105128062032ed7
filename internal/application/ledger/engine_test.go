package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testWarehouse1 = "bodega-1"
	testWarehouse2 = "bodega-2"
	testProduct1   = "producto-1"
	testProduct2   = "producto-2"
)

// newEngine arma un motor sobre el backend en memoria con los saldos iniciales
// indicados (clave bodega|producto -> cantidad).
func newEngine(t *testing.T, initial map[[2]string]int64) (*ledger.Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	balances := memory.NewBalanceRepository(store)
	for k, qty := range initial {
		_, err := balances.SetQuantity(k[0], k[1], qty, time.Now())
		require.NoError(t, err, "debe poderse sembrar el saldo inicial")
	}
	return ledger.NewEngine(memory.NewTxRunner(store)), store
}

func onHand(t *testing.T, store *memory.Store, warehouseID, productID string) int64 {
	t.Helper()
	bal, err := memory.NewBalanceRepository(store).Get(warehouseID, productID)
	require.NoError(t, err)
	if bal == nil {
		return 0
	}
	return bal.QuantityOnHand
}

func movementsFor(t *testing.T, store *memory.Store, warehouseID string) []*entity.Movement {
	t.Helper()
	movs, err := memory.NewMovementRepository(store).ListByWarehouse(warehouseID, nil, nil, 0, 0)
	require.NoError(t, err)
	return movs
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Apply
// ──────────────────────────────────────────────────────────────────────────────

// Un lote válido aplica todos sus deltas y registra un movimiento por delta.
func TestApply_LoteValidoAplicaTodo(t *testing.T) {
	engine, store := newEngine(t, map[[2]string]int64{
		{testWarehouse1, testProduct1}: 10,
	})

	err := engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -4, Cause: entity.MovementCauseSale, CorrelationID: "venta-1"},
		{WarehouseID: testWarehouse1, ProductID: testProduct2, Quantity: 7, Cause: entity.MovementCauseReceipt, CorrelationID: "recepcion-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), onHand(t, store, testWarehouse1, testProduct1))
	assert.Equal(t, int64(7), onHand(t, store, testWarehouse1, testProduct2),
		"el delta positivo debe crear la fila que no existía")
	assert.Len(t, movementsFor(t, store, testWarehouse1), 2,
		"debe quedar un movimiento por cada delta del lote")
}

// Un delta que dejaría el saldo negativo rechaza el lote con la clave ofensora.
func TestApply_SaldoNegativoRechazado(t *testing.T) {
	engine, store := newEngine(t, map[[2]string]int64{
		{testWarehouse1, testProduct1}: 10,
	})

	err := engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -11, Cause: entity.MovementCauseSale},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, testWarehouse1, insufficient.WarehouseID)
	assert.Equal(t, testProduct1, insufficient.ProductID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el error debe seguir mapeando con errors.Is")
	assert.Equal(t, int64(10), onHand(t, store, testWarehouse1, testProduct1),
		"el saldo no debe cambiar cuando el lote se rechaza")
}

// Los deltas del lote sobre la misma clave se acumulan antes de verificar:
// -6 y -5 sobre saldo 10 deben rechazarse aunque cada uno por separado quepa.
func TestApply_DeltasMismaClaveSeAcumulan(t *testing.T) {
	engine, store := newEngine(t, map[[2]string]int64{
		{testWarehouse1, testProduct1}: 10,
	})

	err := engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -6, Cause: entity.MovementCauseSale},
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -5, Cause: entity.MovementCauseSale},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), onHand(t, store, testWarehouse1, testProduct1))

	// La mezcla -6 y +2 sí cabe: neto -4.
	err = engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -6, Cause: entity.MovementCauseSale},
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: 2, Cause: entity.MovementCauseReturn},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), onHand(t, store, testWarehouse1, testProduct1))
}

// Cuando varias claves fallan, se reporta la primera ofensora en el orden del
// lote, no en el orden de bloqueo.
func TestApply_ReportaPrimeraClaveOfensora(t *testing.T) {
	engine, _ := newEngine(t, map[[2]string]int64{
		{testWarehouse1, testProduct1}: 5,
		{testWarehouse1, testProduct2}: 5,
	})

	err := engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct2, Quantity: -9, Cause: entity.MovementCauseSale},
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -9, Cause: entity.MovementCauseSale},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, testProduct2, insufficient.ProductID,
		"debe reportarse la primera clave ofensora en el orden del lote")
}

// Todo o nada: si una clave del lote falla, ninguna otra queda aplicada.
func TestApply_TodoONada(t *testing.T) {
	engine, store := newEngine(t, map[[2]string]int64{
		{testWarehouse1, testProduct1}: 10,
		{testWarehouse2, testProduct1}: 0,
	})

	err := engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: -3, Cause: entity.MovementCauseTransferOut, CorrelationID: "traslado-1"},
		{WarehouseID: testWarehouse2, ProductID: testProduct2, Quantity: -1, Cause: entity.MovementCauseTransferOut, CorrelationID: "traslado-1"},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), onHand(t, store, testWarehouse1, testProduct1),
		"la clave válida del lote no debe quedar aplicada")
	assert.Empty(t, movementsFor(t, store, testWarehouse1),
		"un lote rechazado no debe dejar movimientos")
}

// Lotes vacíos o con deltas malformados se rechazan antes de tocar saldos.
func TestApply_EntradaInvalida(t *testing.T) {
	engine, _ := newEngine(t, nil)

	assert.ErrorIs(t, engine.Apply(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: 0, Cause: entity.MovementCauseSale},
	}), domain.ErrInvalidInput, "cantidad cero no es un movimiento")
	assert.ErrorIs(t, engine.Apply(context.Background(), []ledger.Delta{
		{WarehouseID: testWarehouse1, ProductID: testProduct1, Quantity: 1},
	}), domain.ErrInvalidInput, "todo movimiento necesita causa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests WithRetry
// ──────────────────────────────────────────────────────────────────────────────

// WithRetry reintenta mientras el lote pierda la carrera y devuelve
// ErrConflict al agotar el presupuesto.
func TestWithRetry_AgotadoDevuelveConflict(t *testing.T) {
	attempts := 0
	err := ledger.WithRetry(func() error {
		attempts++
		return ledger.ErrTxBusy
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, attempts, "debe agotar el presupuesto de reintentos")
}

// Un error distinto de ErrTxBusy corta los reintentos de inmediato.
func TestWithRetry_ErrorNoReintentableCorta(t *testing.T) {
	otherErr := errors.New("fallo permanente")
	attempts := 0
	err := ledger.WithRetry(func() error {
		attempts++
		return otherErr
	})
	assert.ErrorIs(t, err, otherErr)
	assert.Equal(t, 1, attempts)
}

// El primer intento exitoso devuelve nil sin reintentar.
func TestWithRetry_ExitoTrasUnConflicto(t *testing.T) {
	attempts := 0
	err := ledger.WithRetry(func() error {
		attempts++
		if attempts == 1 {
			return ledger.ErrTxBusy
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
