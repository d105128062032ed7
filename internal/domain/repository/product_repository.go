package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// Search busca por nombre o código normalizados (sin tildes, case-insensitive).
	Search(companyID, normalizedQuery string, limit int) ([]*entity.Product, error)
	// Delete marca el producto como eliminado (soft delete).
	Delete(id string) error
}
