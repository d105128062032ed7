package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementa BalanceRepository sobre el store en memoria.
// Con locked=true asume que el TxRunner ya tiene el mutex.
type BalanceRepo struct {
	store  *Store
	locked bool
}

// NewBalanceRepository construye el adaptador para uso fuera de transacción.
func NewBalanceRepository(store *Store) *BalanceRepo {
	return &BalanceRepo{store: store}
}

func (r *BalanceRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Get devuelve el saldo o nil si la fila no existe.
func (r *BalanceRepo) Get(warehouseID, productID string) (*entity.Balance, error) {
	defer r.lock()()
	if b, ok := r.store.balances[balanceKey(warehouseID, productID)]; ok {
		return &b, nil
	}
	return nil, nil
}

// GetForUpdate devuelve el saldo, o uno en cero sin crear la fila. El mutex
// del store ya serializa, así que no hay bloqueo de fila que tomar.
func (r *BalanceRepo) GetForUpdate(warehouseID, productID string) (*entity.Balance, error) {
	defer r.lock()()
	if b, ok := r.store.balances[balanceKey(warehouseID, productID)]; ok {
		return &b, nil
	}
	return &entity.Balance{WarehouseID: warehouseID, ProductID: productID}, nil
}

// ApplyDelta aplica el delta rechazando resultados negativos sin tocar la fila.
func (r *BalanceRepo) ApplyDelta(warehouseID, productID string, delta int64, at time.Time) (*entity.Balance, error) {
	defer r.lock()()
	key := balanceKey(warehouseID, productID)
	b, ok := r.store.balances[key]
	if !ok {
		b = entity.Balance{WarehouseID: warehouseID, ProductID: productID, CreatedAt: at}
	}
	if b.QuantityOnHand+delta < 0 {
		return nil, &domain.InsufficientStockError{WarehouseID: warehouseID, ProductID: productID}
	}
	b.QuantityOnHand += delta
	b.UpdatedAt = at
	b.LastMovementAt = at
	r.store.balances[key] = b
	return &b, nil
}

// SetQuantity fija la cantidad absoluta. qty >= 0.
func (r *BalanceRepo) SetQuantity(warehouseID, productID string, qty int64, at time.Time) (*entity.Balance, error) {
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	defer r.lock()()
	key := balanceKey(warehouseID, productID)
	b, ok := r.store.balances[key]
	if !ok {
		b = entity.Balance{WarehouseID: warehouseID, ProductID: productID, CreatedAt: at}
	}
	b.QuantityOnHand = qty
	b.UpdatedAt = at
	b.LastMovementAt = at
	r.store.balances[key] = b
	return &b, nil
}

// ListByWarehouse lista los saldos de una bodega ordenados por producto.
func (r *BalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Balance, error) {
	defer r.lock()()
	var balances []*entity.Balance
	for _, b := range r.store.balances {
		if b.WarehouseID == warehouseID {
			copied := b
			balances = append(balances, &copied)
		}
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].ProductID < balances[j].ProductID })
	return paginate(balances, limit, offset), nil
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementa MovementRepository sobre el store en memoria.
type MovementRepo struct {
	store  *Store
	locked bool
}

// NewMovementRepository construye el adaptador para uso fuera de transacción.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create agrega el movimiento al historial append-only.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	defer r.lock()()
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

// ListByWarehouse lista movimientos del más reciente al más antiguo.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	defer r.lock()()
	var movements []*entity.Movement
	for i := range r.store.movements {
		m := r.store.movements[i]
		if m.WarehouseID != warehouseID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !m.CreatedAt.Before(*to) {
			continue
		}
		movements = append(movements, &m)
	}
	sort.Slice(movements, func(i, j int) bool { return movements[i].CreatedAt.After(movements[j].CreatedAt) })
	return paginate(movements, limit, offset), nil
}

// ListByCorrelation lista los movimientos de un mismo documento, en orden de aplicación.
func (r *MovementRepo) ListByCorrelation(correlationID string) ([]*entity.Movement, error) {
	defer r.lock()()
	var movements []*entity.Movement
	for i := range r.store.movements {
		m := r.store.movements[i]
		if m.CorrelationID == correlationID {
			movements = append(movements, &m)
		}
	}
	return movements, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
