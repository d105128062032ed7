package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. Traduce la violación del índice único
// (company_id, email) a ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, warehouse_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	warehouseID := (*string)(nil)
	if user.WarehouseID != "" {
		warehouseID = &user.WarehouseID
	}
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.CompanyID, warehouseID, user.Email, user.PasswordHash,
		user.Name, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email o nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.getOne(`WHERE email = $1`, email)
}

// GetByEmailAndCompany obtiene un usuario por email dentro de una empresa.
func (r *UserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	return r.getOne(`WHERE email = $1 AND company_id = $2`, email, companyID)
}

func (r *UserRepo) getOne(where string, args ...any) (*entity.User, error) {
	query := `
		SELECT id, company_id, warehouse_id, email, password_hash, name, role, status, created_at, updated_at
		FROM users ` + where
	var u entity.User
	var warehouseID *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.CompanyID, &warehouseID, &u.Email, &u.PasswordHash,
		&u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if warehouseID != nil {
		u.WarehouseID = *warehouseID
	}
	return &u, nil
}
