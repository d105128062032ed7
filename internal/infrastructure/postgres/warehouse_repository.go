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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementa WarehouseRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, name, address, is_active, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.CompanyID, warehouse.Name, warehouse.Address,
		warehouse.IsActive, warehouse.IsDeleted, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID o nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, company_id, name, address, is_active, is_deleted, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.IsActive, &w.IsDeleted,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update persiste los cambios de una bodega.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.IsActive, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListByCompany lista las bodegas (no eliminadas) de una empresa.
func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, company_id, name, address, is_active, is_deleted, created_at, updated_at
		FROM warehouses WHERE company_id = $1 AND is_deleted = false
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.IsActive, &w.IsDeleted,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		warehouses = append(warehouses, &w)
	}
	return warehouses, rows.Err()
}

// Delete marca la bodega como eliminada (soft delete).
func (r *WarehouseRepo) Delete(id string) error {
	query := `UPDATE warehouses SET is_deleted = true, is_active = false, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}
