package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// TransferFilter filtros de listado de traslados.
type TransferFilter struct {
	Status      string // vacío = todos
	WarehouseID string // vacío = todas las bodegas
	Direction   string // "incoming", "outgoing" o vacío (ambas)
}

// TransferRepository define el puerto de persistencia de traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la cabecera del traslado para la transacción
	// actual (la aprobación requiere leer-y-transicionar sin carreras).
	GetForUpdate(id string) (*entity.Transfer, error)
	// UpdateStatus transiciona el estado y registra aprobador/fecha.
	UpdateStatus(transfer *entity.Transfer) error
	List(filter TransferFilter, limit, offset int) ([]*entity.Transfer, error)
}
