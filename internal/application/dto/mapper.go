package dto

import "github.com/jhoicas/hisaabb-api/internal/domain/entity"

// FromUser convierte la entidad en su representación HTTP (sin hash de password).
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	granted := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		granted[i] = string(p)
	}
	effective := u.EffectivePermissions().Sorted()
	eff := make([]string, len(effective))
	for i, p := range effective {
		eff[i] = string(p)
	}
	return &UserResponse{
		ID:                   u.ID,
		CompanyID:            u.CompanyID,
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 string(u.Role),
		Permissions:          granted,
		EffectivePermissions: eff,
		Status:               u.Status,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// FromCompany convierte la entidad en su representación HTTP.
func FromCompany(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		TaxID:        c.TaxID,
		BusinessType: string(c.BusinessType),
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
