package memory

import (
	"time"

	"github.com/facturasur/caf-console/internal/domain/entity"
)

// Dataset de arranque del respaldo: estable entre ejecuciones para que los
// tests y el modo demo sean reproducibles. Réplica del set de demostración
// histórico de la consola.
func seedCompanies() []entity.Company {
	return []entity.Company{
		{
			ID:                    "1",
			Name:                  "Empresa Demo S.A.",
			Code:                  "11111111-1",
			FacturaMovilCompanyID: 12345,
			CommercialActivities: []entity.CommercialActivity{
				{ID: "act-1", Code: "620200", Description: "Consultoría en informática"},
				{ID: "act-2", Code: "631100", Description: "Procesamiento de datos y hosting"},
			},
		},
		{
			ID:                    "2",
			Name:                  "Tecnología Digital Ltda.",
			Code:                  "22222222-2",
			FacturaMovilCompanyID: 67890,
		},
		{
			ID:   "3",
			Name: "Servicios Profesionales SpA",
			Code: "33333333-3",
		},
	}
}

func seedCAFs() map[string][]entity.CAF {
	return map[string][]entity.CAF{
		"1": {
			{
				ID:                "caf-1",
				CompanyCode:       "11111111-1",
				DocumentType:      33,
				InitialFolios:     1,
				FinalFolios:       1000,
				CurrentFolios:     250,
				AuthorizationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ExpirationDate:    time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			},
			{
				ID:                "caf-2",
				CompanyCode:       "11111111-1",
				DocumentType:      39,
				InitialFolios:     1,
				FinalFolios:       500,
				CurrentFolios:     450,
				AuthorizationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ExpirationDate:    time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
			},
		},
		"2": {
			{
				ID:                "caf-3",
				CompanyCode:       "22222222-2",
				DocumentType:      33,
				InitialFolios:     1001,
				FinalFolios:       2000,
				CurrentFolios:     1100,
				AuthorizationDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				ExpirationDate:    time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
			},
		},
		"3": {},
	}
}
