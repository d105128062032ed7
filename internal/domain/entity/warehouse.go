package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// Pertenece exactamente a una empresa; los flags IsActive/IsDeleted vienen del
// directorio y se consultan al validar traslados.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
