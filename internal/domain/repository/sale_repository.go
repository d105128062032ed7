package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// SaleRepository define el puerto de persistencia de ventas (cabecera + líneas).
type SaleRepository interface {
	// Create persiste cabecera y líneas; debe llamarse dentro de la misma
	// transacción que aplica los movimientos SALE.
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Sale, error)
}
