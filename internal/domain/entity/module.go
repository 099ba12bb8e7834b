package entity

// ModuleCategory agrupa los módulos por área funcional.
type ModuleCategory string

// Categorías de módulo.
const (
	CategorySales         ModuleCategory = "sales"
	CategoryInventory     ModuleCategory = "inventory"
	CategoryCustomer      ModuleCategory = "customer"
	CategoryAnalytics     ModuleCategory = "analytics"
	CategoryOperations    ModuleCategory = "operations"
	CategoryFinance       ModuleCategory = "finance"
	CategoryCommunication ModuleCategory = "communication"
	CategoryHR            ModuleCategory = "hr"
	CategorySettings      ModuleCategory = "settings"
)

// AllModuleCategories enumeración cerrada de categorías.
var AllModuleCategories = []ModuleCategory{
	CategorySales,
	CategoryInventory,
	CategoryCustomer,
	CategoryAnalytics,
	CategoryOperations,
	CategoryFinance,
	CategoryCommunication,
	CategoryHR,
	CategorySettings,
}

// Valid informa si la categoría pertenece a la enumeración.
func (c ModuleCategory) Valid() bool {
	for _, known := range AllModuleCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ModuleDescriptor describe una funcionalidad (página) de la aplicación.
// Es dato estático del catálogo: nunca se modifica en tiempo de ejecución.
type ModuleDescriptor struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Description   string         `json:"description" yaml:"description"`
	Icon          string         `json:"icon" yaml:"icon"`
	Path          string         `json:"path" yaml:"path"`
	BusinessTypes []BusinessType `json:"business_types" yaml:"business_types"`
	AllowedRoles  []Role         `json:"allowed_roles" yaml:"allowed_roles"`
	Category      ModuleCategory `json:"category" yaml:"category"`
	Priority      int            `json:"priority" yaml:"priority"` // menor primero
	IsSpecialized bool           `json:"is_specialized" yaml:"-"`
}

// AppliesTo informa si el módulo aplica al tipo de negocio.
func (m ModuleDescriptor) AppliesTo(bt BusinessType) bool {
	for _, b := range m.BusinessTypes {
		if b == bt {
			return true
		}
	}
	return false
}

// AllowsRole informa si el rol puede ver el módulo.
func (m ModuleDescriptor) AllowsRole(role Role) bool {
	for _, r := range m.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Clone copia profunda (los slices no se comparten con el catálogo).
func (m ModuleDescriptor) Clone() ModuleDescriptor {
	m.BusinessTypes = append([]BusinessType(nil), m.BusinessTypes...)
	m.AllowedRoles = append([]Role(nil), m.AllowedRoles...)
	return m
}

// KPIConfig indicador resumido que se muestra en el dashboard.
type KPIConfig struct {
	ID                  string         `json:"id" yaml:"id"`
	Title               string         `json:"title" yaml:"title"`
	Icon                string         `json:"icon" yaml:"icon"`
	Category            ModuleCategory `json:"category" yaml:"category"`
	RequiredPermissions []Permission   `json:"required_permissions" yaml:"required_permissions"`
	BusinessTypes       []BusinessType `json:"business_types" yaml:"business_types"`
}

// AppliesTo informa si el KPI aplica al tipo de negocio.
func (k KPIConfig) AppliesTo(bt BusinessType) bool {
	for _, b := range k.BusinessTypes {
		if b == bt {
			return true
		}
	}
	return false
}

// Clone copia profunda.
func (k KPIConfig) Clone() KPIConfig {
	k.RequiredPermissions = append([]Permission(nil), k.RequiredPermissions...)
	k.BusinessTypes = append([]BusinessType(nil), k.BusinessTypes...)
	return k
}

// QuickAction acceso directo del dashboard para un tipo de negocio.
type QuickAction struct {
	ID                  string       `json:"id" yaml:"id"`
	Title               string       `json:"title" yaml:"title"`
	Description         string       `json:"description" yaml:"description"`
	Icon                string       `json:"icon" yaml:"icon"`
	Path                string       `json:"path" yaml:"path"`
	Priority            int          `json:"priority" yaml:"priority"`
	RequiredPermissions []Permission `json:"required_permissions" yaml:"required_permissions"`
}

// Clone copia profunda.
func (q QuickAction) Clone() QuickAction {
	q.RequiredPermissions = append([]Permission(nil), q.RequiredPermissions...)
	return q
}
