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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto. Traduce la violación del índice único
// (company_id, code) a ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, code, name, barcode, unit_price, cost_price, tax_rate, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Code, product.Name, product.Barcode,
		product.UnitPrice, product.CostPrice, product.TaxRate,
		product.IsActive, product.IsDeleted, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, code, name, barcode, unit_price, cost_price, tax_rate, is_active, is_deleted, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Barcode,
		&p.UnitPrice, &p.CostPrice, &p.TaxRate,
		&p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update persiste los cambios de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, unit_price = $4, cost_price = $5, tax_rate = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode,
		product.UnitPrice, product.CostPrice, product.TaxRate,
		product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista los productos (no eliminados) de una empresa.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, company_id, code, name, barcode, unit_price, cost_price, tax_rate, is_active, is_deleted, created_at, updated_at
		FROM products WHERE company_id = $1 AND is_deleted = false
		ORDER BY name`
	args := []any{companyID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Search busca por nombre o código normalizados. La consulta ya llega en
// minúsculas y sin tildes; unaccent en el lado SQL empareja los datos.
func (r *ProductRepo) Search(companyID, normalizedQuery string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, company_id, code, name, barcode, unit_price, cost_price, tax_rate, is_active, is_deleted, created_at, updated_at
		FROM products
		WHERE company_id = $1 AND is_deleted = false
		  AND (unaccent(lower(name)) LIKE '%' || $2 || '%' OR lower(code) LIKE '%' || $2 || '%' OR barcode = $2)
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, companyID, normalizedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete marca el producto como eliminado (soft delete).
func (r *ProductRepo) Delete(id string) error {
	query := `UPDATE products SET is_deleted = true, is_active = false, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Barcode,
			&p.UnitPrice, &p.CostPrice, &p.TaxRate,
			&p.IsActive, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
