package entity

// BusinessType clasifica el modelo de negocio de una empresa (tenant).
// Determina qué módulos especializados ve la empresa.
type BusinessType string

// Tipos de negocio soportados.
const (
	BusinessRetailer     BusinessType = "retailer"
	BusinessEcommerce    BusinessType = "ecommerce"
	BusinessService      BusinessType = "service"
	BusinessManufacturer BusinessType = "manufacturer"
	BusinessWholesaler   BusinessType = "wholesaler"
	BusinessDistributor  BusinessType = "distributor"
	BusinessTrader       BusinessType = "trader"
)

// AllBusinessTypes en el orden en que se presentan al usuario.
var AllBusinessTypes = []BusinessType{
	BusinessRetailer,
	BusinessEcommerce,
	BusinessService,
	BusinessManufacturer,
	BusinessWholesaler,
	BusinessDistributor,
	BusinessTrader,
}

// Valid informa si el tipo de negocio pertenece a la enumeración.
func (b BusinessType) Valid() bool {
	for _, known := range AllBusinessTypes {
		if b == known {
			return true
		}
	}
	return false
}

// ParseBusinessType convierte un string de entrada (HTTP, DB) en BusinessType.
func ParseBusinessType(s string) (BusinessType, bool) {
	b := BusinessType(s)
	return b, b.Valid()
}
