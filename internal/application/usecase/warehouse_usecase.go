package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. El borrado es lógico: una
// bodega con historial de movimientos nunca se elimina físicamente.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega activa para la empresa.
func (uc *WarehouseUseCase) Create(companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega, validando que pertenezca a la empresa.
func (uc *WarehouseUseCase) GetByID(companyID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update modifica los campos no nulos de la bodega.
func (uc *WarehouseUseCase) Update(companyID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista las bodegas de la empresa.
func (uc *WarehouseUseCase) List(companyID string, page dto.PageRequest) ([]dto.WarehouseResponse, error) {
	warehouses, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		if w.IsDeleted {
			continue
		}
		out = append(out, *toWarehouseResponse(w))
	}
	return out, nil
}

// Delete marca la bodega como eliminada.
func (uc *WarehouseUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *WarehouseUseCase) getOwned(companyID, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return warehouse, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		IsActive:  w.IsActive,
	}
}
