package repository

import (
	"context"

	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// UpdatePermissions reemplaza los permisos concedidos al usuario (además de los del rol).
	UpdatePermissions(ctx context.Context, id string, perms []entity.Permission) error
}
