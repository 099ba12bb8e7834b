package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
	"github.com/jhoicas/hisaabb-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength largo mínimo aceptado para contraseñas.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// OnboardingTxRunner ejecuta el alta de empresa + owner dentro de una transacción.
// Lo implementa *postgres.TxRunner.
type OnboardingTxRunner interface {
	RunOnboarding(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: alta de negocio, registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          OnboardingTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	tx OnboardingTxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tx: tx, jwtCfg: jwtCfg}
}

// HashPassword bcrypt con costo por defecto. Rechaza contraseñas cortas.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// RegisterBusiness crea la empresa y su usuario owner en una sola transacción y devuelve la sesión.
func (uc *AuthUseCase) RegisterBusiness(ctx context.Context, in dto.RegisterBusinessRequest) (*dto.RegisterBusinessResponse, error) {
	bt, ok := entity.ParseBusinessType(in.BusinessType)
	if !ok {
		return nil, fmt.Errorf("%w: business_type desconocido %q", domain.ErrInvalidInput, in.BusinessType)
	}
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.CompanyName) == "" || email == "" {
		return nil, fmt.Errorf("%w: company_name y email son requeridos", domain.ErrInvalidInput)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.CompanyName),
		TaxID:        strings.TrimSpace(in.TaxID),
		BusinessType: bt,
		Phone:        in.Phone,
		Email:        email,
		Status:       entity.CompanyStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: hash,
		Name:         nonEmpty(in.OwnerName, email),
		Role:         entity.RoleOwner,
		Permissions:  []entity.Permission{},
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunOnboarding(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if existing, err := userRepo.GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.issueToken(owner)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterBusinessResponse{
		Company: *dto.FromCompany(company),
		Token:   token,
		User:    *dto.FromUser(owner),
	}, nil
}

// RegisterUser agrega un usuario staff a una empresa existente. Pedir cualquier
// otro rol devuelve domain.ErrForbidden.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.CompanyID == "" {
		return nil, fmt.Errorf("%w: email y company_id son requeridos", domain.ErrInvalidInput)
	}
	// El registro público siempre crea staff. Otros roles se asignan desde
	// /api/users por un owner o manager autenticado.
	role := entity.RoleStaff
	if in.Role != "" {
		parsed, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
		}
		if parsed != entity.RoleStaff {
			return nil, domain.ErrForbidden
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: hash,
		Name:         nonEmpty(in.Name, email),
		Role:         role,
		Permissions:  []entity.Permission{},
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.FromUser(user)}, nil
}

func (uc *AuthUseCase) issueToken(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    u.ID,
		CompanyID: u.CompanyID,
		Role:      string(u.Role),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
