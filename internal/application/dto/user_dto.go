package dto

import "time"

// CreateUserRequest alta de un usuario de staff en la empresa del token.
type CreateUserRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// RegisterRequest registro público en una empresa existente. Role solo admite staff.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// RegisterBusinessRequest alta de empresa + usuario owner en una sola transacción.
type RegisterBusinessRequest struct {
	CompanyName  string `json:"company_name"`
	BusinessType string `json:"business_type"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone"`
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// RegisterBusinessResponse empresa creada y sesión del owner.
type RegisterBusinessResponse struct {
	Company CompanyResponse `json:"company"`
	Token   string          `json:"token"`
	User    UserResponse    `json:"user"`
}

// UpdatePermissionsRequest reemplaza los permisos concedidos a un usuario.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
// Permissions son los concedidos; EffectivePermissions incluye los del rol.
type UserResponse struct {
	ID                   string    `json:"id"`
	CompanyID            string    `json:"company_id"`
	Email                string    `json:"email"`
	Name                 string    `json:"name"`
	Role                 string    `json:"role"`
	Permissions          []string  `json:"permissions"`
	EffectivePermissions []string  `json:"effective_permissions"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
