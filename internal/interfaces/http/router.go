package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/hisaabb-api/internal/application/auth"
	"github.com/jhoicas/hisaabb-api/internal/application/usecase"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// StaffModuleID módulo del catálogo que habilita la gestión de usuarios.
const StaffModuleID = "staff-management"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	UserUC        *usecase.UserUseCase
	ModuleService *usecase.ModuleService
	DashboardUC   *usecase.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-business", authHandler.RegisterBusiness)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	owner := RequireRole(entity.RoleOwner)
	companies.Get("/", owner, companyHandler.List)
	companies.Post("/", owner, companyHandler.Create)
	companies.Patch("/me/business-type", owner, companyHandler.UpdateBusinessType)
	companies.Get("/:id", companyHandler.GetByID)

	// Módulos del usuario
	modules := protected.Group("/modules")
	moduleHandler := NewModuleHandler(deps.ModuleService)
	modules.Get("/", moduleHandler.List)
	modules.Get("/common", moduleHandler.Common)
	modules.Get("/specialized", moduleHandler.Specialized)
	modules.Get("/:id/access", moduleHandler.Access)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/config", dashboardHandler.GetConfig)

	// Catálogo (administración)
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.ModuleService, deps.DashboardUC)
	catalog.Get("/modules", catalogHandler.Modules)
	catalog.Get("/kpis", catalogHandler.KPIs)
	catalog.Get("/preview", owner, catalogHandler.Preview)

	// Staff (gated por módulo)
	users := protected.Group("/users", RequireModule(StaffModuleID, deps.ModuleService))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id/permissions", userHandler.UpdatePermissions)
}
