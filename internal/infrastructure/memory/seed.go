package memory

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
)

// IDs fijos del modo demo, para poder probar la API sin base de datos.
const (
	DemoCompanyID     = "demo-company"
	DemoWarehouseMain = "demo-bodega-principal"
	DemoWarehouseAux  = "demo-bodega-norte"
	DemoAdminEmail    = "admin@demo.local"
	DemoAdminPassword = "admin123"
)

// Seed carga datos de demostración: una empresa, dos bodegas, productos con
// stock inicial, un proveedor y un usuario admin.
func Seed(store *Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	store.mu.Lock()
	defer store.mu.Unlock()

	store.companies[DemoCompanyID] = entity.Company{
		ID: DemoCompanyID, Name: "Comercial Demo SAS", TaxID: "900123456-7",
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}

	store.warehouses[DemoWarehouseMain] = entity.Warehouse{
		ID: DemoWarehouseMain, CompanyID: DemoCompanyID, Name: "Bodega Principal",
		Address: "Calle 10 # 5-51", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	store.warehouses[DemoWarehouseAux] = entity.Warehouse{
		ID: DemoWarehouseAux, CompanyID: DemoCompanyID, Name: "Bodega Norte",
		Address: "Carrera 45 # 80-12", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}

	products := []entity.Product{
		{ID: "demo-prod-azucar", Code: "AZU-001", Name: "Azúcar Refinada 1kg", Barcode: "7701234500017", UnitPrice: decimal.NewFromInt(4500), CostPrice: decimal.NewFromInt(3200), TaxRate: decimal.NewFromInt(5)},
		{ID: "demo-prod-cafe", Code: "CAF-001", Name: "Café Molido 500g", Barcode: "7701234500024", UnitPrice: decimal.NewFromInt(18900), CostPrice: decimal.NewFromInt(14000), TaxRate: decimal.NewFromInt(5)},
		{ID: "demo-prod-arroz", Code: "ARR-001", Name: "Arroz Blanco 5kg", Barcode: "7701234500031", UnitPrice: decimal.NewFromInt(21500), CostPrice: decimal.NewFromInt(17800), TaxRate: decimal.Zero},
		{ID: "demo-prod-aceite", Code: "ACE-001", Name: "Aceite Vegetal 1L", Barcode: "7701234500048", UnitPrice: decimal.NewFromInt(12300), CostPrice: decimal.NewFromInt(9500), TaxRate: decimal.NewFromInt(19)},
	}
	for _, p := range products {
		p.CompanyID = DemoCompanyID
		p.IsActive = true
		p.CreatedAt = now
		p.UpdatedAt = now
		store.products[p.ID] = p
	}

	initialStock := map[string]int64{
		"demo-prod-azucar": 120,
		"demo-prod-cafe":   45,
		"demo-prod-arroz":  80,
		"demo-prod-aceite": 60,
	}
	for productID, qty := range initialStock {
		store.balances[balanceKey(DemoWarehouseMain, productID)] = entity.Balance{
			WarehouseID: DemoWarehouseMain, ProductID: productID,
			QuantityOnHand: qty, CreatedAt: now, UpdatedAt: now, LastMovementAt: now,
		}
	}

	store.suppliers["demo-proveedor"] = entity.Supplier{
		ID: "demo-proveedor", CompanyID: DemoCompanyID, Name: "Distribuidora La Esquina",
		TaxID: "800987654-3", Phone: "+57 300 555 0101", CreatedAt: now, UpdatedAt: now,
	}

	store.users["demo-admin"] = entity.User{
		ID: "demo-admin", CompanyID: DemoCompanyID, Email: DemoAdminEmail,
		PasswordHash: string(hash), Name: "Administrador Demo", Role: entity.RoleAdmin,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	return nil
}
