package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor para la empresa.
func (uc *SupplierUseCase) Create(companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor, validando que pertenezca a la empresa.
func (uc *SupplierUseCase) GetByID(companyID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update modifica los campos no nulos del proveedor.
func (uc *SupplierUseCase) Update(companyID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores de la empresa.
func (uc *SupplierUseCase) List(companyID string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		if s.IsDeleted {
			continue
		}
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Delete marca el proveedor como eliminado.
func (uc *SupplierUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *SupplierUseCase) getOwned(companyID, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return supplier, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:    s.ID,
		Name:  s.Name,
		TaxID: s.TaxID,
		Phone: s.Phone,
		Email: s.Email,
	}
}
