package repository

import (
	"context"

	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetByID devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// GetBusinessType lectura liviana usada en cada resolución de módulos.
	GetBusinessType(ctx context.Context, id string) (entity.BusinessType, error)
}
