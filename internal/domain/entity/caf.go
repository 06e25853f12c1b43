package entity

import "time"

// CAF representa un Código de Autorización de Folios emitido por el SII.
// Autoriza a la empresa a emitir documentos del tipo DocumentType numerados
// dentro del rango inclusivo [InitialFolios, FinalFolios].
//
// CurrentFolios es el cursor del próximo folio a consumir; el valor
// FinalFolios+1 señala rango agotado. El consumo de folios ocurre en el
// gateway remoto: la consola solo lee estos registros, nunca los muta.
type CAF struct {
	ID                string    `json:"id"`
	CompanyCode       string    `json:"companyCode"` // RUT del emisor, copia desnormalizada
	DocumentType      uint      `json:"documentType"`
	InitialFolios     int64     `json:"initialFolios"`
	FinalFolios       int64     `json:"finalFolios"`
	CurrentFolios     int64     `json:"currentFolios"`
	AuthorizationDate time.Time `json:"authorizationDate"`
	ExpirationDate    time.Time `json:"expirationDate"`
}
