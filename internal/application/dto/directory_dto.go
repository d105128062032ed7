package dto

// CreateCompanyRequest body para POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// UpdateCompanyRequest body para PUT /api/companies/:id. Solo los campos no
// nulos se modifican.
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// CompanyResponse empresa en lecturas.
type CompanyResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TaxID  string `json:"tax_id,omitempty"`
	Status string `json:"status"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// WarehouseResponse bodega en lecturas.
type WarehouseResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// CreateProductRequest body para POST /api/products (precios como string decimal).
type CreateProductRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode,omitempty"`
	UnitPrice string `json:"unit_price"`
	CostPrice string `json:"cost_price,omitempty"`
	TaxRate   string `json:"tax_rate,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name      *string `json:"name,omitempty"`
	Barcode   *string `json:"barcode,omitempty"`
	UnitPrice *string `json:"unit_price,omitempty"`
	CostPrice *string `json:"cost_price,omitempty"`
	TaxRate   *string `json:"tax_rate,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// ProductResponse producto en lecturas.
type ProductResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode,omitempty"`
	UnitPrice string `json:"unit_price"`
	CostPrice string `json:"cost_price"`
	TaxRate   string `json:"tax_rate"`
	IsActive  bool   `json:"is_active"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// SupplierResponse proveedor en lecturas.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
