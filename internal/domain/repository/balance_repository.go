package repository

import (
	"time"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// BalanceRepository define el puerto de persistencia de saldos de inventario.
// Es el único dueño del invariante quantity_on_hand >= 0 a nivel de fila.
type BalanceRepository interface {
	// Get devuelve el saldo o nil si la fila no existe.
	Get(warehouseID, productID string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila para la transacción actual y la devuelve;
	// si no existe devuelve un saldo en cero sin crear la fila.
	GetForUpdate(warehouseID, productID string) (*entity.Balance, error)
	// ApplyDelta aplica un delta como escritura condicional atómica: crea la
	// fila en 0 si no existe, rechaza con InsufficientStockError si el
	// resultado sería negativo y en ese caso deja la fila intacta.
	ApplyDelta(warehouseID, productID string, delta int64, at time.Time) (*entity.Balance, error)
	// SetQuantity fija la cantidad absoluta (solo ajuste manual). qty >= 0.
	SetQuantity(warehouseID, productID string, qty int64, at time.Time) (*entity.Balance, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Balance, error)
}
