package dto

import "github.com/jhoicas/hisaabb-api/internal/domain/entity"

// ModuleListResponse módulos visibles para el usuario del token.
type ModuleListResponse struct {
	BusinessType string                    `json:"business_type"`
	Role         string                    `json:"role"`
	Items        []entity.ModuleDescriptor `json:"items"`
}

// ModuleAccessResponse respuesta de GET /api/modules/:id/access.
type ModuleAccessResponse struct {
	ModuleID  string `json:"module_id"`
	HasAccess bool   `json:"has_access"`
}

// CatalogModulesResponse catálogo completo (vista de administración).
type CatalogModulesResponse struct {
	Common      []entity.ModuleDescriptor `json:"common"`
	Specialized []entity.ModuleDescriptor `json:"specialized"`
}

// DashboardPreviewRequest parámetros de GET /api/catalog/preview.
// Permissions separados por coma; vacío = permisos por defecto del rol.
type DashboardPreviewRequest struct {
	BusinessType string `query:"business_type"`
	Role         string `query:"role"`
	Permissions  string `query:"permissions"`
}
