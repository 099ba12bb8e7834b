package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hisaabb-api/internal/application/dto"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type moduleChecker interface {
	HasModuleAccess(ctx context.Context, companyID string, role entity.Role, moduleID string) (bool, error)
}

// RequireModule verifica que el rol del token, en el tipo de negocio de su empresa,
// tenga acceso al módulo. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay company_id en el contexto.
//   - 404 COMPANY_NOT_FOUND si la empresa del token ya no existe.
//   - 403 MODULE_DISABLED si el módulo no aplica al tipo de negocio o al rol.
//   - 503 MODULE_CHECK_FAILED ante fallo al consultar la empresa.
func RequireModule(moduleID string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		ok, err := checker.HasModuleAccess(c.Context(), companyID, GetRole(c), moduleID)
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "COMPANY_NOT_FOUND",
				Message: "la empresa del token no existe",
			})
		}
		if err != nil {
			requestLogger(c).Error().Err(err).Str("module", moduleID).Msg("verificación de módulo")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleID + "' no está disponible para este usuario",
			})
		}
		return c.Next()
	}
}
