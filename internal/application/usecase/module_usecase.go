package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain/access"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
)

// ModuleService resuelve qué módulos ve un usuario. Obtiene el tipo de negocio
// de la empresa y delega el filtrado en access.Resolver.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	resolver    *access.Resolver
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository, resolver *access.Resolver) *ModuleService {
	return &ModuleService{companyRepo: companyRepo, resolver: resolver}
}

// BusinessType tipo de negocio de la empresa. domain.ErrNotFound si no existe.
func (s *ModuleService) BusinessType(ctx context.Context, companyID string) (entity.BusinessType, error) {
	if companyID == "" {
		return "", fmt.Errorf("module: companyID es obligatorio")
	}
	return s.companyRepo.GetBusinessType(ctx, companyID)
}

// ListModules módulos comunes y especializados visibles para el rol en la empresa.
func (s *ModuleService) ListModules(ctx context.Context, companyID string, role entity.Role) (*dto.ModuleListResponse, error) {
	bt, err := s.BusinessType(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.ModuleListResponse{
		BusinessType: string(bt),
		Role:         string(role),
		Items:        s.resolver.ResolveAllModules(bt, role),
	}, nil
}

// ListCommon módulos comunes visibles para el rol. No depende de la empresa.
func (s *ModuleService) ListCommon(role entity.Role) *dto.ModuleListResponse {
	return &dto.ModuleListResponse{
		Role:  string(role),
		Items: s.resolver.ResolveCommonModules(role),
	}
}

// ListSpecialized módulos propios del tipo de negocio de la empresa.
func (s *ModuleService) ListSpecialized(ctx context.Context, companyID string, role entity.Role) (*dto.ModuleListResponse, error) {
	bt, err := s.BusinessType(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.ModuleListResponse{
		BusinessType: string(bt),
		Role:         string(role),
		Items:        s.resolver.ResolveSpecializedModules(bt, role),
	}, nil
}

// HasModuleAccess informa si el rol, en la empresa indicada, puede usar el módulo.
// Devuelve false (sin error) si el módulo no existe o no aplica.
// Devuelve error solo ante fallos de infraestructura o empresa inexistente.
func (s *ModuleService) HasModuleAccess(ctx context.Context, companyID string, role entity.Role, moduleID string) (bool, error) {
	bt, err := s.BusinessType(ctx, companyID)
	if err != nil {
		return false, err
	}
	return s.resolver.HasModuleAccess(moduleID, bt, role), nil
}

// Catalog vista completa del catálogo para administración.
func (s *ModuleService) Catalog() *dto.CatalogModulesResponse {
	c := s.resolver.Catalog()
	return &dto.CatalogModulesResponse{Common: c.Common(), Specialized: c.Specialized()}
}

// KPIs catálogo completo de KPIs.
func (s *ModuleService) KPIs() []entity.KPIConfig {
	return s.resolver.Catalog().KPIs()
}
