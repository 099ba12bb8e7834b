package entity

// WidgetBucket categoría gruesa de un widget (zona del layout).
type WidgetBucket string

// Zonas del layout del dashboard.
const (
	BucketPrimary   WidgetBucket = "primary"
	BucketSecondary WidgetBucket = "secondary"
	BucketAnalytics WidgetBucket = "analytics"
	BucketSettings  WidgetBucket = "settings"
)

// DashboardWidget proyección efímera de un módulo (o acción rápida) para el layout.
type DashboardWidget struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Path        string       `json:"path"`
	Category    WidgetBucket `json:"category"`
	Priority    int          `json:"priority"`
}

// DashboardLayout zonas del dashboard ya recortadas.
type DashboardLayout struct {
	Sidebar      []DashboardWidget `json:"sidebar"`
	QuickActions []DashboardWidget `json:"quick_actions"`
	Widgets      []DashboardWidget `json:"widgets"`
}

// DashboardConfig resultado completo de componer el dashboard de un usuario.
type DashboardConfig struct {
	BusinessType BusinessType       `json:"business_type"`
	Role         Role               `json:"role"`
	Modules      []ModuleDescriptor `json:"modules"`
	Layout       DashboardLayout    `json:"layout"`
	KPIs         []KPIConfig        `json:"kpis"`
}
