package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/application/ledger"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

// UseCase expone las lecturas de inventario y el ajuste manual absoluto.
// Los saldos son perezosos: un par (bodega, producto) sin fila vale cero.
type UseCase struct {
	txRunner       ledger.TxRunner
	balanceReader  repository.BalanceRepository
	movementReader repository.MovementRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	txRunner ledger.TxRunner,
	balanceReader repository.BalanceRepository,
	movementReader repository.MovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		balanceReader:  balanceReader,
		movementReader: movementReader,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// GetBalance devuelve el saldo de un producto en una bodega. Si la fila no
// existe devuelve cantidades en cero sin crearla.
func (uc *UseCase) GetBalance(ctx context.Context, companyID, warehouseID, productID string) (*dto.BalanceResponse, error) {
	if warehouseID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}

	balance, err := uc.balanceReader.Get(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.BalanceResponse{
		WarehouseID: warehouseID,
		ProductID:   productID,
	}
	if balance != nil {
		resp.QuantityOnHand = balance.QuantityOnHand
		resp.QuantityReserved = balance.QuantityReserved
		if !balance.LastMovementAt.IsZero() {
			last := balance.LastMovementAt
			resp.LastMovementAt = &last
		}
	}
	return resp, nil
}

// ListInventory lista los productos de la empresa con su saldo en la bodega
// dada. Los productos sin fila de saldo aparecen con cantidad cero.
func (uc *UseCase) ListInventory(ctx context.Context, companyID, warehouseID string, page dto.PageRequest) ([]dto.InventoryItemResponse, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}

	products, err := uc.productRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	// Un solo barrido de saldos en vez de una consulta por producto.
	balances, err := uc.balanceReader.ListByWarehouse(warehouseID, 0, 0)
	if err != nil {
		return nil, err
	}
	onHand := make(map[string]int64, len(balances))
	for _, b := range balances {
		onHand[b.ProductID] = b.QuantityOnHand
	}

	items := make([]dto.InventoryItemResponse, 0, len(products))
	for _, p := range products {
		if p.IsDeleted {
			continue
		}
		items = append(items, dto.InventoryItemResponse{
			ProductID:      p.ID,
			ProductCode:    p.Code,
			ProductName:    p.Name,
			Barcode:        p.Barcode,
			UnitPrice:      p.UnitPrice.StringFixed(2),
			TaxRate:        p.TaxRate.StringFixed(2),
			QuantityOnHand: onHand[p.ID],
		})
	}
	return items, nil
}

// ListMovements devuelve el historial de movimientos de una bodega, opcionalmente
// acotado por fechas, del más reciente al más antiguo.
func (uc *UseCase) ListMovements(ctx context.Context, companyID, warehouseID string, from, to *time.Time, page dto.PageRequest) ([]*entity.Movement, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.movementReader.ListByWarehouse(warehouseID, from, to, page.Limit, page.Offset)
}

// AdjustStock fija la cantidad absoluta de un producto en una bodega (conteo
// físico) y deja la diferencia registrada como movimiento ADJUSTMENT. La
// cantidad destino no puede ser negativa.
func (uc *UseCase) AdjustStock(ctx context.Context, companyID, userID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.WarehouseID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityOnHand < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkWarehouse(companyID, in.WarehouseID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.IsDeleted {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	err = ledger.WithRetry(func() error {
		return uc.txRunner.Run(ctx, func(balanceRepo repository.BalanceRepository, movementRepo repository.MovementRepository) error {
			current, err := balanceRepo.GetForUpdate(in.WarehouseID, in.ProductID)
			if err != nil {
				return err
			}
			diff := in.QuantityOnHand - current.QuantityOnHand
			now := time.Now()
			if _, err := balanceRepo.SetQuantity(in.WarehouseID, in.ProductID, in.QuantityOnHand, now); err != nil {
				return err
			}
			if diff == 0 {
				return nil
			}
			return movementRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				WarehouseID: in.WarehouseID,
				ProductID:   in.ProductID,
				Quantity:    diff,
				Cause:       entity.MovementCauseAdjustment,
				CreatedBy:   userID,
				CreatedAt:   now,
			})
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.AdjustStockResponse{
		WarehouseID:    in.WarehouseID,
		ProductID:      in.ProductID,
		QuantityOnHand: in.QuantityOnHand,
	}, nil
}

func (uc *UseCase) checkWarehouse(companyID, warehouseID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
