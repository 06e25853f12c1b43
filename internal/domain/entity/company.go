package entity

// CommercialActivity representa un giro comercial registrado por la empresa ante el SII.
type CommercialActivity struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Company representa una empresa emisora de documentos tributarios electrónicos.
// El Code (RUT) es inmutable una vez creada la empresa y único en el sistema.
type Company struct {
	ID                    string               `json:"id"`
	Name                  string               `json:"name"`
	Code                  string               `json:"code"` // RUT chileno, formato 12345678-9
	FacturaMovilCompanyID uint64               `json:"factura_movil_company_id,omitempty"`
	CommercialActivities  []CommercialActivity `json:"commercial_activities,omitempty"`
}
