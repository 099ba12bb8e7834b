package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/application/usecase"
)

// CatalogHandler vistas de administración del catálogo estático.
type CatalogHandler struct {
	modules   *usecase.ModuleService
	dashboard *usecase.DashboardUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(modules *usecase.ModuleService, dashboard *usecase.DashboardUseCase) *CatalogHandler {
	return &CatalogHandler{modules: modules, dashboard: dashboard}
}

// Modules godoc
// @Summary      Catálogo completo de módulos
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CatalogModulesResponse
// @Router       /api/catalog/modules [get]
func (h *CatalogHandler) Modules(c *fiber.Ctx) error {
	return c.JSON(h.modules.Catalog())
}

// KPIs godoc
// @Summary      Catálogo de KPIs
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.KPIConfig
// @Router       /api/catalog/kpis [get]
func (h *CatalogHandler) KPIs(c *fiber.Ctx) error {
	return c.JSON(h.modules.KPIs())
}

// Preview godoc
// @Summary      Vista previa del dashboard de otra combinación
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        business_type  query  string  true   "tipo de negocio"
// @Param        role           query  string  true   "rol"
// @Param        permissions    query  string  false  "permisos separados por coma"
// @Success      200  {object}  entity.DashboardConfig
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/catalog/preview [get]
func (h *CatalogHandler) Preview(c *fiber.Ctx) error {
	var in dto.DashboardPreviewRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	cfg, err := h.dashboard.Preview(in.BusinessType, in.Role, in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cfg)
}
