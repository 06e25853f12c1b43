package dto

import (
	"github.com/facturasur/caf-console/internal/domain/entity"
	"github.com/facturasur/caf-console/internal/domain/folio"
)

// CAFResponse un CAF decorado con su clasificación de estado, calculada al
// momento de responder (nunca almacenada) y con el nombre de despliegue del
// tipo de documento para la UI.
type CAFResponse struct {
	entity.CAF
	folio.Summary
	DocumentTypeName string `json:"documentTypeName"`
}

// CAFListResponse listado de CAFs de una empresa.
type CAFListResponse struct {
	Items []CAFResponse `json:"items"`
}
