package ledger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
	"github.com/jhoicas/pos-bodegas/pkg/metrics"
)

// ErrTxBusy señala que el lote perdió una carrera con otro escritor y la
// transacción completa debe reintentarse desde la pre-verificación.
var ErrTxBusy = errors.New("transacción en conflicto, reintentar")

// maxAttempts presupuesto de reintentos de un lote bajo contención.
const maxAttempts = 3

// Delta es un movimiento pendiente de aplicar: un cambio de cantidad con signo
// sobre una clave (bodega, producto), etiquetado con causa y documento origen.
type Delta struct {
	WarehouseID   string
	ProductID     string
	Quantity      int64
	Cause         string
	CorrelationID string
	CreatedBy     string
}

// Engine aplica lotes de deltas como una sola unidad atómica: o todos los
// movimientos del lote quedan aplicados o ninguno. Antes de escribir verifica
// que ningún saldo quedaría negativo, acumulando los deltas del lote que
// tocan la misma clave.
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor de movimientos.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// Apply aplica el lote en su propia transacción, con reintentos bajo contención.
func (e *Engine) Apply(ctx context.Context, deltas []Delta) error {
	return WithRetry(func() error {
		return e.txRunner.Run(ctx, func(
			balanceRepo repository.BalanceRepository,
			movementRepo repository.MovementRepository,
		) error {
			return e.ApplyInTx(balanceRepo, movementRepo, deltas)
		})
	})
}

// ApplyInTx aplica el lote dentro de la transacción del caller. Los flujos de
// documentos (venta, devolución, recepción, traslado) lo usan para que
// cabecera, líneas y movimientos queden en la misma transacción.
//
// Orden del algoritmo:
//  1. acumular deltas por clave (los deltas del lote sobre la misma clave se
//     suman antes de verificar);
//  2. bloquear las claves en orden natural (bodega, producto) para evitar
//     esperas circulares entre lotes concurrentes;
//  3. verificar saldo proyectado >= 0 por clave, reportando la primera clave
//     ofensora en el orden del lote;
//  4. aplicar cada delta y registrar su movimiento.
//
// Un fallo de stock en la fase 4 significa que otro escritor ganó la carrera
// después de la verificación; se devuelve ErrTxBusy para que el caller
// reintente el lote completo desde la fase 1.
func (e *Engine) ApplyInTx(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	deltas []Delta,
) error {
	if len(deltas) == 0 {
		return domain.ErrInvalidInput
	}
	for _, d := range deltas {
		if d.WarehouseID == "" || d.ProductID == "" || d.Quantity == 0 || d.Cause == "" {
			return domain.ErrInvalidInput
		}
	}

	type key struct{ warehouseID, productID string }
	accumulated := make(map[key]int64, len(deltas))
	for _, d := range deltas {
		accumulated[key{d.WarehouseID, d.ProductID}] += d.Quantity
	}

	keys := make([]key, 0, len(accumulated))
	for k := range accumulated {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].warehouseID != keys[j].warehouseID {
			return keys[i].warehouseID < keys[j].warehouseID
		}
		return keys[i].productID < keys[j].productID
	})

	current := make(map[key]int64, len(keys))
	for _, k := range keys {
		bal, err := balanceRepo.GetForUpdate(k.warehouseID, k.productID)
		if err != nil {
			return err
		}
		current[k] = bal.QuantityOnHand
	}

	// Primera clave ofensora en el orden del lote.
	checked := make(map[key]bool, len(keys))
	for _, d := range deltas {
		k := key{d.WarehouseID, d.ProductID}
		if checked[k] {
			continue
		}
		checked[k] = true
		if current[k]+accumulated[k] < 0 {
			metrics.InsufficientStock.Inc()
			return &domain.InsufficientStockError{
				WarehouseID: k.warehouseID,
				ProductID:   k.productID,
			}
		}
	}

	now := time.Now()
	for _, d := range deltas {
		if _, err := balanceRepo.ApplyDelta(d.WarehouseID, d.ProductID, d.Quantity, now); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				// La pre-verificación pasó: un escritor concurrente ganó la carrera.
				return ErrTxBusy
			}
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			WarehouseID:   d.WarehouseID,
			ProductID:     d.ProductID,
			Quantity:      d.Quantity,
			Cause:         d.Cause,
			CorrelationID: d.CorrelationID,
			CreatedAt:     now,
			CreatedBy:     d.CreatedBy,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
	}

	for _, d := range deltas {
		metrics.MovementsApplied.WithLabelValues(d.Cause).Inc()
	}
	return nil
}

// WithRetry ejecuta fn y la reintenta mientras falle con ErrTxBusy, hasta
// agotar el presupuesto; entonces devuelve ErrConflict. Es seguro reintentar
// porque un lote fallido no deja escrituras (la transacción hizo rollback).
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrTxBusy) {
			return err
		}
	}
	metrics.BatchConflicts.Inc()
	return domain.ErrConflict
}
