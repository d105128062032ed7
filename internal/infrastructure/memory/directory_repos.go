package memory

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementa CompanyRepository sobre el store en memoria.
type CompanyRepo struct {
	store *Store
}

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(store *Store) *CompanyRepo {
	return &CompanyRepo{store: store}
}

func (r *CompanyRepo) Create(company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.companies[company.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.companies[company.ID] = *company
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CompanyRepo) Update(company *entity.Company) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.companies[company.ID] = *company
	return nil
}

func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var companies []*entity.Company
	for _, c := range r.store.companies {
		copied := c
		companies = append(companies, &copied)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].Name < companies[j].Name })
	return paginate(companies, limit, offset), nil
}

func (r *CompanyRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = "inactive"
	c.UpdatedAt = time.Now()
	r.store.companies[id] = c
	return nil
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementa WarehouseRepository sobre el store en memoria.
type WarehouseRepo struct {
	store *Store
}

// NewWarehouseRepository construye el adaptador.
func NewWarehouseRepository(store *Store) *WarehouseRepo {
	return &WarehouseRepo{store: store}
}

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.warehouses[warehouse.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if w, ok := r.store.warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.warehouses[warehouse.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var warehouses []*entity.Warehouse
	for _, w := range r.store.warehouses {
		if w.CompanyID == companyID && !w.IsDeleted {
			copied := w
			warehouses = append(warehouses, &copied)
		}
	}
	sort.Slice(warehouses, func(i, j int) bool { return warehouses[i].Name < warehouses[j].Name })
	return paginate(warehouses, limit, offset), nil
}

func (r *WarehouseRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.IsDeleted = true
	w.IsActive = false
	w.UpdatedAt = time.Now()
	r.store.warehouses[id] = w
	return nil
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementa ProductRepository sobre el store en memoria.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.CompanyID == product.CompanyID && p.Code == product.Code && !p.IsDeleted {
			return domain.ErrDuplicate
		}
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p, ok := r.store.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var products []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID == companyID && !p.IsDeleted {
			copied := p
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return paginate(products, limit, offset), nil
}

// Search busca por nombre, código o barcode; los datos se normalizan igual
// que la consulta (minúsculas, sin tildes).
func (r *ProductRepo) Search(companyID, normalizedQuery string, limit int) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	var products []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID != companyID || p.IsDeleted {
			continue
		}
		if strings.Contains(stripAccents(p.Name), normalizedQuery) ||
			strings.Contains(strings.ToLower(p.Code), normalizedQuery) ||
			p.Barcode == normalizedQuery {
			copied := p
			products = append(products, &copied)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return paginate(products, limit, 0), nil
}

func (r *ProductRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	p.IsActive = false
	p.UpdatedAt = time.Now()
	r.store.products[id] = p
	return nil
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementa SupplierRepository sobre el store en memoria.
type SupplierRepo struct {
	store *Store
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s, ok := r.store.suppliers[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var suppliers []*entity.Supplier
	for _, s := range r.store.suppliers {
		if s.CompanyID == companyID && !s.IsDeleted {
			copied := s
			suppliers = append(suppliers, &copied)
		}
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return paginate(suppliers, limit, offset), nil
}

func (r *SupplierRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsDeleted = true
	s.UpdatedAt = time.Now()
	r.store.suppliers[id] = s
	return nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository sobre el store en memoria.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.CompanyID == user.CompanyID && u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email && u.CompanyID == companyID {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}
