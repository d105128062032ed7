package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// ReturnRepository define el puerto de persistencia de devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	GetByID(id string) (*entity.Return, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Return, error)
}
