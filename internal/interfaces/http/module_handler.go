package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/application/usecase"
)

// ModuleHandler expone los módulos visibles para el usuario del token.
type ModuleHandler struct {
	svc *usecase.ModuleService
}

// NewModuleHandler construye el handler.
func NewModuleHandler(svc *usecase.ModuleService) *ModuleHandler {
	return &ModuleHandler{svc: svc}
}

// List godoc
// @Summary      Módulos disponibles (comunes + especializados)
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ModuleListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListModules(c.Context(), GetCompanyID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Common godoc
// @Summary      Módulos comunes a todos los tipos de negocio
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ModuleListResponse
// @Router       /api/modules/common [get]
func (h *ModuleHandler) Common(c *fiber.Ctx) error {
	return c.JSON(h.svc.ListCommon(GetRole(c)))
}

// Specialized godoc
// @Summary      Módulos del tipo de negocio de la empresa
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ModuleListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/modules/specialized [get]
func (h *ModuleHandler) Specialized(c *fiber.Ctx) error {
	out, err := h.svc.ListSpecialized(c.Context(), GetCompanyID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Access godoc
// @Summary      ¿Puede el usuario usar el módulo?
// @Tags         modules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del módulo"
// @Success      200  {object}  dto.ModuleAccessResponse
// @Router       /api/modules/{id}/access [get]
func (h *ModuleHandler) Access(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.svc.HasModuleAccess(c.Context(), GetCompanyID(c), GetRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ModuleAccessResponse{ModuleID: id, HasAccess: ok})
}
