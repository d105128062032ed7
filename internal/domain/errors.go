package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrInvalidState: transición ilegal del estado de un traslado
	// (aprobar o rechazar uno que ya no está PENDING).
	ErrInvalidState = errors.New("estado inválido para la operación")
)

// InsufficientStockError identifica la primera clave (bodega, producto) de un
// lote que dejaría el saldo negativo. Unwrap -> ErrInsufficientStock, así los
// handlers siguen mapeando con errors.Is.
type InsufficientStockError struct {
	WarehouseID string
	ProductID   string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s", e.ProductID, e.WarehouseID)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
