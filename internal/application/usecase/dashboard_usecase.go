package usecase

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jhoicas/hisaabb-api/internal/domain"
	"github.com/jhoicas/hisaabb-api/internal/domain/dashboard"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
	"github.com/jhoicas/hisaabb-api/internal/domain/repository"
	"github.com/jhoicas/hisaabb-api/pkg/logger"
)

// DefaultDashboardCacheSize entradas del LRU cuando la configuración no indica un valor válido.
const DefaultDashboardCacheSize = 256

// DashboardUseCase compone el dashboard del usuario autenticado.
// La composición es pura sobre el catálogo inmutable, así que el resultado se
// memoiza por (tipo de negocio, rol, permisos efectivos).
type DashboardUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	composer    *dashboard.Composer
	cache       *lru.Cache[string, entity.DashboardConfig]
	log         *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cacheSize <= 0 usa DefaultDashboardCacheSize.
func NewDashboardUseCase(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	composer *dashboard.Composer,
	cacheSize int,
	log *logger.Logger,
) (*DashboardUseCase, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultDashboardCacheSize
	}
	cache, err := lru.New[string, entity.DashboardConfig](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("dashboard: cache: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		composer:    composer,
		cache:       cache,
		log:         log,
	}, nil
}

// GetConfig dashboard para el usuario del token. El rol es el del token; los permisos
// son los del rol más los concedidos al usuario en la base de datos. Un usuario
// que no está activo recibe domain.ErrForbidden.
func (uc *DashboardUseCase) GetConfig(ctx context.Context, companyID, userID string, role entity.Role) (entity.DashboardConfig, error) {
	bt, err := uc.companyRepo.GetBusinessType(ctx, companyID)
	if err != nil {
		return entity.DashboardConfig{}, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.DashboardConfig{}, err
	}
	if user == nil || user.CompanyID != companyID {
		return entity.DashboardConfig{}, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusActive {
		return entity.DashboardConfig{}, domain.ErrForbidden
	}
	perms := entity.DefaultPermissions(role)
	for _, p := range user.Permissions {
		perms.Add(p)
	}
	return uc.compose(bt, role, perms), nil
}

// Preview compone el dashboard de una combinación arbitraria. permissions es una
// lista separada por comas; vacía equivale a los permisos por defecto del rol.
func (uc *DashboardUseCase) Preview(businessType, role, permissions string) (entity.DashboardConfig, error) {
	bt, ok := entity.ParseBusinessType(businessType)
	if !ok {
		return entity.DashboardConfig{}, fmt.Errorf("%w: business_type desconocido %q", domain.ErrInvalidInput, businessType)
	}
	r, ok := entity.ParseRole(role)
	if !ok {
		return entity.DashboardConfig{}, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	perms := entity.DefaultPermissions(r)
	if strings.TrimSpace(permissions) != "" {
		parsed, err := parsePermissions(strings.Split(permissions, ","))
		if err != nil {
			return entity.DashboardConfig{}, err
		}
		perms = entity.NewPermissionSet(parsed...)
	}
	return uc.compose(bt, r, perms), nil
}

// compose consulta el cache antes de delegar en el compositor.
// Los valores cacheados se comparten entre peticiones y no deben modificarse.
func (uc *DashboardUseCase) compose(bt entity.BusinessType, role entity.Role, perms entity.PermissionSet) entity.DashboardConfig {
	key := cacheKey(bt, role, perms)
	if cfg, ok := uc.cache.Get(key); ok {
		uc.log.Trace().Str("key", key).Msg("dashboard: cache hit")
		return cfg
	}
	cfg := uc.composer.Compose(bt, role, perms)
	if evicted := uc.cache.Add(key, cfg); evicted {
		uc.log.Debug().Int("size", uc.cache.Len()).Msg("dashboard: cache eviction")
	}
	return cfg
}

// CacheLen entradas actualmente memoizadas.
func (uc *DashboardUseCase) CacheLen() int {
	return uc.cache.Len()
}

func cacheKey(bt entity.BusinessType, role entity.Role, perms entity.PermissionSet) string {
	sorted := perms.Sorted()
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = string(p)
	}
	return string(bt) + "|" + string(role) + "|" + strings.Join(parts, ",")
}
