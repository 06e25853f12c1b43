package dto

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name                  string `json:"name" validate:"required,min=1,max=200"`
	Code                  string `json:"code" validate:"required,min=3,max=12"`
	FacturaMovilCompanyID uint64 `json:"factura_movil_company_id" validate:"omitempty"`
}

// AddCommercialActivityRequest entrada para agregar un giro comercial.
type AddCommercialActivityRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=10"`
	Description string `json:"description" validate:"required,min=1,max=200"`
}
