package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementa SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, tax_id, phone, email, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.CompanyID, supplier.Name, supplier.TaxID,
		supplier.Phone, supplier.Email, supplier.IsDeleted, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID o nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `
		SELECT id, company_id, name, tax_id, phone, email, is_deleted, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.TaxID, &s.Phone, &s.Email,
		&s.IsDeleted, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update persiste los cambios de un proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, phone = $3, email = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.Phone, supplier.Email, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// ListByCompany lista los proveedores (no eliminados) de una empresa.
func (r *SupplierRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, company_id, name, tax_id, phone, email, is_deleted, created_at, updated_at
		FROM suppliers WHERE company_id = $1 AND is_deleted = false
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &s.TaxID, &s.Phone, &s.Email,
			&s.IsDeleted, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

// Delete marca el proveedor como eliminado (soft delete).
func (r *SupplierRepo) Delete(id string) error {
	query := `UPDATE suppliers SET is_deleted = true, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
