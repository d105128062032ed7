package repository

import "github.com/jhoicas/pos-bodegas/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
}
