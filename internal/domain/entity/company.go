package entity

import "time"

// Estados de empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID           string
	Name         string
	TaxID        string // GSTIN/NTN u otro identificador fiscal, opcional
	BusinessType BusinessType
	Address      string
	Phone        string
	Email        string
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
