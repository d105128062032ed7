package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementa MovementRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: los movimientos nunca se actualizan ni borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, warehouse_id, product_id, quantity, cause, correlation_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	correlationID := (*string)(nil)
	if movement.CorrelationID != "" {
		correlationID = &movement.CorrelationID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.WarehouseID, movement.ProductID, movement.Quantity,
		movement.Cause, correlationID, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByWarehouse lista movimientos de una bodega, del más reciente al más
// antiguo, opcionalmente acotados por fechas.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, cause, correlation_id, created_at, created_by
		FROM stock_movements WHERE warehouse_id = $1`
	args := []any{warehouseID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByCorrelation lista los movimientos originados por un mismo documento.
func (r *MovementRepo) ListByCorrelation(correlationID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, warehouse_id, product_id, quantity, cause, correlation_id, created_at, created_by
		FROM stock_movements WHERE correlation_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, correlationID)
	if err != nil {
		return nil, fmt.Errorf("list movements by correlation: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var movements []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var correlationID, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.WarehouseID, &m.ProductID, &m.Quantity,
			&m.Cause, &correlationID, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if correlationID != nil {
			m.CorrelationID = *correlationID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
