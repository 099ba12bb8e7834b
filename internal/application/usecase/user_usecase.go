package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hisaabb-api/internal/application/auth"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
)

// UserUseCase gestión de staff dentro de la empresa del usuario autenticado.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.FromUser(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Caller identidad de quien ejecuta la operación (datos del token).
type Caller struct {
	UserID    string
	CompanyID string
	Role      entity.Role
}

// Create da de alta un usuario en la empresa del caller. Solo un owner puede crear
// otro owner y nadie concede permisos que no tiene.
func (uc *UserUseCase) Create(ctx context.Context, caller Caller, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email es requerido", domain.ErrInvalidInput)
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if role == entity.RoleOwner && caller.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	perms, err := parsePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	if err := uc.checkGrantable(ctx, caller, perms); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    caller.CompanyID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Permissions:  perms,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// UpdatePermissions reemplaza los permisos concedidos a un usuario de la empresa del caller.
// Los permisos de un owner solo los cambia otro owner.
func (uc *UserUseCase) UpdatePermissions(ctx context.Context, caller Caller, userID string, in dto.UpdatePermissionsRequest) (*dto.UserResponse, error) {
	perms, err := parsePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Un usuario de otra empresa se reporta como inexistente.
	if user == nil || user.CompanyID != caller.CompanyID {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleOwner && caller.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if err := uc.checkGrantable(ctx, caller, perms); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePermissions(ctx, userID, perms); err != nil {
		return nil, err
	}
	user.Permissions = perms
	user.UpdatedAt = time.Now()
	return dto.FromUser(user), nil
}

// checkGrantable exige que los permisos estén dentro del conjunto efectivo del caller
// (permisos del rol del token más los concedidos en la base de datos).
func (uc *UserUseCase) checkGrantable(ctx context.Context, caller Caller, perms []entity.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	self, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if self == nil || self.CompanyID != caller.CompanyID {
		return domain.ErrForbidden
	}
	effective := entity.DefaultPermissions(caller.Role)
	for _, p := range self.Permissions {
		effective.Add(p)
	}
	for _, p := range perms {
		if !effective.Has(p) {
			return fmt.Errorf("%w: no puede conceder %q", domain.ErrForbidden, p)
		}
	}
	return nil
}

// parsePermissions valida contra la enumeración cerrada y elimina duplicados (conserva el orden).
func parsePermissions(raw []string) ([]entity.Permission, error) {
	out := make([]entity.Permission, 0, len(raw))
	seen := make(map[entity.Permission]bool, len(raw))
	for _, s := range raw {
		p, ok := entity.ParsePermission(strings.TrimSpace(s))
		if !ok {
			return nil, fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, s)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
