package dto

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	CompanyID   string `json:"company_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"` // alcance de bodega del usuario
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse usuario en respuestas (sin hash).
type UserResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
