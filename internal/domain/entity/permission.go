package entity

import "sort"

// Permission etiqueta de permiso. Los KPIs y las acciones rápidas se habilitan
// si el usuario tiene al menos uno de sus permisos requeridos.
type Permission string

// Permisos conocidos.
const (
	PermViewDashboard    Permission = "view_dashboard"
	PermViewSales        Permission = "view_sales"
	PermCreateSales      Permission = "create_sales"
	PermManageInvoices   Permission = "manage_invoices"
	PermViewInventory    Permission = "view_inventory"
	PermManageInventory  Permission = "manage_inventory"
	PermManageCustomers  Permission = "manage_customers"
	PermViewReports      Permission = "view_reports"
	PermViewFinancials   Permission = "view_financials"
	PermManageStaff      Permission = "manage_staff"
	PermManageSettings   Permission = "manage_settings"
	PermManagePurchases  Permission = "manage_purchases"
	PermManageProduction Permission = "manage_production"
	PermManageOrders     Permission = "manage_orders"
	PermManageServices   Permission = "manage_services"
)

// AllPermissions enumeración cerrada de permisos.
var AllPermissions = []Permission{
	PermViewDashboard,
	PermViewSales,
	PermCreateSales,
	PermManageInvoices,
	PermViewInventory,
	PermManageInventory,
	PermManageCustomers,
	PermViewReports,
	PermViewFinancials,
	PermManageStaff,
	PermManageSettings,
	PermManagePurchases,
	PermManageProduction,
	PermManageOrders,
	PermManageServices,
}

// Valid informa si el permiso pertenece a la enumeración.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermission convierte un string en Permission.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	return p, p.Valid()
}

// rolePermissions permisos que cada rol tiene sin concesiones adicionales.
var rolePermissions = map[Role][]Permission{
	RoleOwner: AllPermissions,
	RoleManager: {
		PermViewDashboard, PermViewSales, PermCreateSales, PermManageInvoices,
		PermViewInventory, PermManageInventory, PermManageCustomers, PermViewReports,
		PermManageStaff, PermManagePurchases, PermManageProduction, PermManageOrders,
		PermManageServices,
	},
	RoleAccountant: {
		PermViewDashboard, PermViewSales, PermManageInvoices, PermViewReports,
		PermViewFinancials, PermManagePurchases,
	},
	RoleStaff: {
		PermViewDashboard, PermViewSales, PermCreateSales, PermViewInventory,
		PermManageCustomers, PermManageOrders, PermManageServices,
	},
	RoleCashier: {PermViewDashboard, PermViewSales, PermCreateSales},
}

// DefaultPermissions devuelve un conjunto nuevo con los permisos del rol.
// Un rol desconocido no tiene permisos.
func DefaultPermissions(role Role) PermissionSet {
	return NewPermissionSet(rolePermissions[role]...)
}

// PermissionSet conjunto de permisos del usuario que hace la petición.
type PermissionSet map[Permission]struct{}

// NewPermissionSet construye un conjunto a partir de una lista (admite duplicados).
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Add agrega un permiso al conjunto.
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Has informa si el conjunto contiene el permiso.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny informa si el conjunto contiene al menos uno de los permisos dados.
// Una lista vacía nunca se satisface.
func (s PermissionSet) HasAny(perms []Permission) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Sorted devuelve los permisos ordenados alfabéticamente (salida estable para JSON y claves de caché).
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
