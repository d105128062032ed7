package entity

import "time"

// Balance representa el saldo de inventario de un producto en una bodega.
// Clave única (WarehouseID, ProductID). QuantityOnHand nunca es negativo; la
// fila se crea perezosamente en el primer movimiento y nunca se borra, solo
// se lleva a cero.
//
// QuantityReserved se persiste y se devuelve en las lecturas pero ningún flujo
// lo muta: queda como campo de paso para un futuro mecanismo de reservas.
type Balance struct {
	WarehouseID      string
	ProductID        string
	QuantityOnHand   int64
	QuantityReserved int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastMovementAt   time.Time
}
