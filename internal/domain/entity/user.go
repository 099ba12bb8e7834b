package entity

import "time"

// Role función del usuario dentro de su empresa.
type Role string

// Roles válidos para User.
const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleStaff      Role = "staff"
	RoleCashier    Role = "cashier"
)

// AllRoles enumeración cerrada de roles.
var AllRoles = []Role{RoleOwner, RoleManager, RoleAccountant, RoleStaff, RoleCashier}

// Valid informa si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole convierte un string (claim JWT, query, DB) en Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Permissions  []Permission // permisos adicionales a los del rol
	Status       string       // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectivePermissions une los permisos por defecto del rol con los concedidos al usuario.
func (u *User) EffectivePermissions() PermissionSet {
	set := DefaultPermissions(u.Role)
	for _, p := range u.Permissions {
		set.Add(p)
	}
	return set
}
