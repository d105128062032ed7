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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementa SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas de la venta. Debe llamarse dentro de la
// misma transacción que aplica los movimientos SALE.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, number, warehouse_id, cashier_id, customer_id, gross_amount, discount_amount, tax_amount, total_amount, payment_status, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	customerID := (*string)(nil)
	if sale.CustomerID != "" {
		customerID = &sale.CustomerID
	}
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.Number, sale.WarehouseID, sale.CashierID, customerID,
		sale.GrossAmount, sale.DiscountAmount, sale.TaxAmount, sale.TotalAmount,
		sale.PaymentStatus, sale.Status, sale.Notes, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, line_number, product_id, quantity, unit_price, discount_amount, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.LineNumber, item.ProductID, item.Quantity,
			item.UnitPrice, item.DiscountAmount, item.TaxAmount, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta completa (cabecera + líneas) o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, warehouse_id, cashier_id, customer_id, gross_amount, discount_amount, tax_amount, total_amount, payment_status, status, notes, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Number, &s.WarehouseID, &s.CashierID, &customerID,
		&s.GrossAmount, &s.DiscountAmount, &s.TaxAmount, &s.TotalAmount,
		&s.PaymentStatus, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}

	items, err := r.itemsFor(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// ListByWarehouse lista ventas de una bodega, de la más reciente a la más
// antigua, sin líneas.
func (r *SaleRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, number, warehouse_id, cashier_id, customer_id, gross_amount, discount_amount, tax_amount, total_amount, payment_status, status, notes, created_at, updated_at
		FROM sales WHERE warehouse_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(
			&s.ID, &s.Number, &s.WarehouseID, &s.CashierID, &customerID,
			&s.GrossAmount, &s.DiscountAmount, &s.TaxAmount, &s.TotalAmount,
			&s.PaymentStatus, &s.Status, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if customerID != nil {
			s.CustomerID = *customerID
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SaleRepo) itemsFor(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, line_number, product_id, quantity, unit_price, discount_amount, tax_amount, line_total
		FROM sale_items WHERE sale_id = $1
		ORDER BY line_number`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.LineNumber, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.DiscountAmount, &item.TaxAmount, &item.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
