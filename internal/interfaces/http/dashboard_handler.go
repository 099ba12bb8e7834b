package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hisaabb-api/internal/application/usecase"
)

// DashboardHandler entrega la configuración del dashboard del usuario.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetConfig godoc
// @Summary      Configuración del dashboard
// @Description  Módulos, sidebar, acciones rápidas, widgets y KPIs según tipo de negocio, rol y permisos.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.DashboardConfig
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/config [get]
func (h *DashboardHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.uc.GetConfig(c.Context(), GetCompanyID(c), GetUserID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cfg)
}
