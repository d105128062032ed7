package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementa ReturnRepository sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste cabecera y líneas de la devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	ctx := context.Background()
	query := `
		INSERT INTO returns (id, number, sale_id, warehouse_id, cashier_id, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	saleID := (*string)(nil)
	if ret.SaleID != "" {
		saleID = &ret.SaleID
	}
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.Number, saleID, ret.WarehouseID, ret.CashierID,
		ret.Reason, ret.Status, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}

	itemQuery := `
		INSERT INTO return_items (id, return_id, product_id, quantity, unit_price, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range ret.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.ReturnID, item.ProductID, item.Quantity,
			item.UnitPrice, item.TaxAmount, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución completa o nil si no existe.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, sale_id, warehouse_id, cashier_id, reason, status, created_at, updated_at
		FROM returns WHERE id = $1`
	ret, err := r.scanReturn(r.q.QueryRow(ctx, query, id))
	if err != nil || ret == nil {
		return ret, err
	}

	itemQuery := `
		SELECT id, return_id, product_id, quantity, unit_price, tax_amount, line_total
		FROM return_items WHERE return_id = $1`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.ReturnItem
		if err := rows.Scan(
			&item.ID, &item.ReturnID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.TaxAmount, &item.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		ret.Items = append(ret.Items, item)
	}
	return ret, rows.Err()
}

// ListByWarehouse lista devoluciones de una bodega, sin líneas.
func (r *ReturnRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Return, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, number, sale_id, warehouse_id, cashier_id, reason, status, created_at, updated_at
		FROM returns WHERE warehouse_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var returns []*entity.Return
	for rows.Next() {
		ret, err := r.scanReturn(rows)
		if err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}

func (r *ReturnRepo) scanReturn(row pgx.Row) (*entity.Return, error) {
	var ret entity.Return
	var saleID *string
	err := row.Scan(
		&ret.ID, &ret.Number, &saleID, &ret.WarehouseID, &ret.CashierID,
		&ret.Reason, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan return: %w", err)
	}
	if saleID != nil {
		ret.SaleID = *saleID
	}
	return &ret, nil
}
