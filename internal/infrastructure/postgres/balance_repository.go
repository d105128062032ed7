package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementa BalanceRepository sobre PostgreSQL (usable con pool o tx).
// La no-negatividad se impone dos veces: el UPDATE condicional de ApplyDelta y
// el CHECK (quantity_on_hand >= 0) de la tabla.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo o nil si la fila no existe.
func (r *BalanceRepo) Get(warehouseID, productID string) (*entity.Balance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at
		FROM stock_balances WHERE warehouse_id = $1 AND product_id = $2`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve; si no existe
// devuelve un saldo en cero sin crear la fila.
func (r *BalanceRepo) GetForUpdate(warehouseID, productID string) (*entity.Balance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at
		FROM stock_balances WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{WarehouseID: warehouseID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// ApplyDelta aplica un delta como escritura condicional atómica. Para deltas
// negativos el UPDATE solo procede si el resultado queda >= 0; cero filas
// afectadas significa stock insuficiente (o fila inexistente) y la fila queda
// intacta. Para deltas no negativos hace upsert creando la fila en cero.
func (r *BalanceRepo) ApplyDelta(warehouseID, productID string, delta int64, at time.Time) (*entity.Balance, error) {
	if delta >= 0 {
		query := `
			INSERT INTO stock_balances (warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at)
			VALUES ($1, $2, $3, 0, $4, $4, $4)
			ON CONFLICT (warehouse_id, product_id) DO UPDATE SET
				quantity_on_hand = stock_balances.quantity_on_hand + EXCLUDED.quantity_on_hand,
				updated_at = EXCLUDED.updated_at,
				last_movement_at = EXCLUDED.last_movement_at
			RETURNING warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at`
		var b entity.Balance
		err := r.q.QueryRow(context.Background(), query, warehouseID, productID, delta, at).Scan(
			&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
			&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
		)
		if err != nil {
			return nil, fmt.Errorf("apply delta (credit): %w", err)
		}
		return &b, nil
	}

	query := `
		UPDATE stock_balances SET
			quantity_on_hand = quantity_on_hand + $3,
			updated_at = $4,
			last_movement_at = $4
		WHERE warehouse_id = $1 AND product_id = $2 AND quantity_on_hand + $3 >= 0
		RETURNING warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID, delta, at).Scan(
		&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.InsufficientStockError{WarehouseID: warehouseID, ProductID: productID}
		}
		return nil, fmt.Errorf("apply delta (debit): %w", err)
	}
	return &b, nil
}

// SetQuantity fija la cantidad absoluta (ajuste por conteo físico). qty >= 0.
func (r *BalanceRepo) SetQuantity(warehouseID, productID string, qty int64, at time.Time) (*entity.Balance, error) {
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	query := `
		INSERT INTO stock_balances (warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at)
		VALUES ($1, $2, $3, 0, $4, $4, $4)
		ON CONFLICT (warehouse_id, product_id) DO UPDATE SET
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			updated_at = EXCLUDED.updated_at,
			last_movement_at = EXCLUDED.last_movement_at
		RETURNING warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at`
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID, qty, at).Scan(
		&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
		&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
	)
	if err != nil {
		return nil, fmt.Errorf("set quantity: %w", err)
	}
	return &b, nil
}

// ListByWarehouse lista los saldos de una bodega. limit <= 0 lista todos.
func (r *BalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Balance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity_on_hand, quantity_reserved, created_at, updated_at, last_movement_at
		FROM stock_balances WHERE warehouse_id = $1
		ORDER BY product_id`
	args := []any{warehouseID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var balances []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(
			&b.WarehouseID, &b.ProductID, &b.QuantityOnHand, &b.QuantityReserved,
			&b.CreatedAt, &b.UpdatedAt, &b.LastMovementAt,
		); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, &b)
	}
	return balances, rows.Err()
}
