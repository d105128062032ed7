package repository

import (
	"time"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del historial de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByCorrelation(correlationID string) ([]*entity.Movement, error)
}
