package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el identificador fiscal ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	bt, ok := entity.ParseBusinessType(in.BusinessType)
	if !ok {
		return nil, fmt.Errorf("%w: business_type desconocido %q", domain.ErrInvalidInput, in.BusinessType)
	}
	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		TaxID:        strings.TrimSpace(in.TaxID),
		BusinessType: bt,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		Status:       entity.CompanyStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromCompany(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateBusinessType cambia el tipo de negocio. A partir de la siguiente petición
// los usuarios de la empresa ven los módulos especializados del nuevo tipo.
func (uc *CompanyUseCase) UpdateBusinessType(ctx context.Context, companyID string, in dto.UpdateBusinessTypeRequest) (*dto.CompanyResponse, error) {
	bt, ok := entity.ParseBusinessType(in.BusinessType)
	if !ok {
		return nil, fmt.Errorf("%w: business_type desconocido %q", domain.ErrInvalidInput, in.BusinessType)
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.BusinessType = bt
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}
