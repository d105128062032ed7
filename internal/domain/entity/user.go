package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del back office. WarehouseID es su alcance de
// bodega: si no está vacío, solo puede operar inventario de esa bodega.
type User struct {
	ID           string
	CompanyID    string
	WarehouseID  string // vacío = sin restricción de bodega
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
