package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error)
	// Delete marca la bodega como eliminada (soft delete).
	Delete(id string) error
}
