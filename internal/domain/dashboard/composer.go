// Package dashboard arma el layout del dashboard a partir de los módulos
// resueltos, las acciones rápidas del tipo de negocio y el catálogo de KPIs.
package dashboard

import (
	"sort"

	"github.com/jhoicas/hisaabb-api/internal/domain/access"
	"github.com/jhoicas/hisaabb-api/internal/domain/entity"
)

// Máximo de widgets por zona. Recortar es una restricción de presentación, no un error.
const (
	MaxPrimary   = 6
	MaxSecondary = 8
	MaxAnalytics = 4
	MaxSettings  = 4
	MaxSidebar   = 8
)

// categoryBuckets asigna a cada categoría de módulo su zona del layout.
// Debe cubrir todas las entradas de entity.AllModuleCategories.
var categoryBuckets = map[entity.ModuleCategory]entity.WidgetBucket{
	entity.CategorySales:         entity.BucketPrimary,
	entity.CategoryInventory:     entity.BucketPrimary,
	entity.CategoryOperations:    entity.BucketPrimary,
	entity.CategoryCustomer:      entity.BucketSecondary,
	entity.CategoryFinance:       entity.BucketSecondary,
	entity.CategoryCommunication: entity.BucketSecondary,
	entity.CategoryHR:            entity.BucketSecondary,
	entity.CategoryAnalytics:     entity.BucketAnalytics,
	entity.CategorySettings:      entity.BucketSettings,
}

// BucketFor zona del layout para una categoría. El catálogo valida las
// categorías al cargar, así que el caso por defecto solo cubre valores ajenos a él.
func BucketFor(c entity.ModuleCategory) entity.WidgetBucket {
	if b, ok := categoryBuckets[c]; ok {
		return b
	}
	return entity.BucketSecondary
}

// Composer compone DashboardConfig. No tiene estado propio más allá del resolver.
type Composer struct {
	resolver *access.Resolver
}

// NewComposer construye el compositor sobre un resolver.
func NewComposer(resolver *access.Resolver) *Composer {
	return &Composer{resolver: resolver}
}

// Compose función pura de (businessType, role, permissions).
func (c *Composer) Compose(businessType entity.BusinessType, role entity.Role, permissions entity.PermissionSet) entity.DashboardConfig {
	modules := c.resolver.ResolveAllModules(businessType, role)

	buckets := make(map[entity.WidgetBucket][]entity.DashboardWidget, 4)
	for _, m := range modules {
		w := toWidget(m)
		buckets[w.Category] = append(buckets[w.Category], w)
	}
	primary := sortAndLimit(buckets[entity.BucketPrimary], MaxPrimary)
	secondary := sortAndLimit(buckets[entity.BucketSecondary], MaxSecondary)
	analytics := sortAndLimit(buckets[entity.BucketAnalytics], MaxAnalytics)
	settings := sortAndLimit(buckets[entity.BucketSettings], MaxSettings)

	sidebar := make([]entity.DashboardWidget, 0, MaxSidebar)
	sidebar = append(sidebar, primary...)
	sidebar = append(sidebar, secondary...)
	if len(sidebar) > MaxSidebar {
		sidebar = sidebar[:MaxSidebar]
	}

	widgets := make([]entity.DashboardWidget, 0, len(analytics)+len(settings))
	widgets = append(widgets, analytics...)
	widgets = append(widgets, settings...)

	return entity.DashboardConfig{
		BusinessType: businessType,
		Role:         role,
		Modules:      modules,
		Layout: entity.DashboardLayout{
			Sidebar:      sidebar,
			QuickActions: c.QuickActions(businessType, permissions),
			Widgets:      widgets,
		},
		KPIs: c.KPIs(businessType, permissions),
	}
}

// QuickActions acciones rápidas del tipo de negocio cuyos permisos requeridos
// se cruzan con los del usuario. Vacío si el tipo no tiene acciones definidas.
func (c *Composer) QuickActions(businessType entity.BusinessType, permissions entity.PermissionSet) []entity.DashboardWidget {
	actions := c.resolver.Catalog().QuickActions(businessType)
	out := make([]entity.DashboardWidget, 0, len(actions))
	for _, a := range actions {
		if !permissions.HasAny(a.RequiredPermissions) {
			continue
		}
		out = append(out, entity.DashboardWidget{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Path:        a.Path,
			Category:    entity.BucketPrimary,
			Priority:    a.Priority,
		})
	}
	return out
}

// KPIs indicadores del tipo de negocio con al menos un permiso requerido presente.
func (c *Composer) KPIs(businessType entity.BusinessType, permissions entity.PermissionSet) []entity.KPIConfig {
	all := c.resolver.Catalog().KPIs()
	out := make([]entity.KPIConfig, 0, len(all))
	for _, k := range all {
		if k.AppliesTo(businessType) && permissions.HasAny(k.RequiredPermissions) {
			out = append(out, k)
		}
	}
	return out
}

func toWidget(m entity.ModuleDescriptor) entity.DashboardWidget {
	return entity.DashboardWidget{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Icon:        m.Icon,
		Path:        m.Path,
		Category:    BucketFor(m.Category),
		Priority:    m.Priority,
	}
}

func sortAndLimit(ws []entity.DashboardWidget, max int) []entity.DashboardWidget {
	out := append([]entity.DashboardWidget(nil), ws...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > max {
		out = out[:max]
	}
	return out
}
