package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-bodegas/internal/application/dto"
	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
	"github.com/jhoicas/pos-bodegas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login. El token emitido
// lleva empresa, rol y alcance de bodega; ese alcance es el que después
// restringe las operaciones de inventario del usuario.
type UseCase struct {
	userRepo      repository.UserRepository
	companyRepo   repository.CompanyRepository
	warehouseRepo repository.WarehouseRepository
	jwtCfg        JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	warehouseRepo repository.WarehouseRepository,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{
		userRepo:      userRepo,
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		jwtCfg:        jwtCfg,
	}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe en esa empresa. Si se
// pasa warehouse_id, la bodega debe existir y ser de la misma empresa.
func (uc *UseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.CompanyID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmailAndCompany(in.Email, in.CompanyID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound // empresa no existe
	}
	if in.WarehouseID != "" {
		warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil || warehouse.IsDeleted || warehouse.CompanyID != in.CompanyID {
			return nil, domain.ErrInvalidInput
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleVendedor
	case entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor:
	default:
		return nil, domain.ErrInvalidInput
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		WarehouseID:  in.WarehouseID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, user.WarehouseID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		WarehouseID: u.WarehouseID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
	}
}
