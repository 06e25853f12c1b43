package sii

import "fmt"

// =============================================================================
// Tipos de Documento Tributario Electrónico (DTE) autorizables vía CAF.
// Enumeración cerrada: un CAF siempre referencia uno de estos códigos.
// =============================================================================

const (
	DocTypeFacturaElectronica uint = 33 // Factura Electrónica
	DocTypeFacturaExenta      uint = 34 // Factura No Afecta o Exenta Electrónica
	DocTypeBoletaElectronica  uint = 39 // Boleta Electrónica
	DocTypeBoletaExenta       uint = 41 // Boleta No Afecta o Exenta Electrónica
	DocTypeGuiaDespacho       uint = 52 // Guía de Despacho Electrónica
	DocTypeNotaDebito         uint = 56 // Nota de Débito Electrónica
	DocTypeNotaCredito        uint = 61 // Nota de Crédito Electrónica
)

// documentTypeNames nombres de despliegue por código DTE.
var documentTypeNames = map[uint]string{
	DocTypeFacturaElectronica: "Factura Electrónica",
	DocTypeFacturaExenta:      "Factura Exenta",
	DocTypeBoletaElectronica:  "Boleta Electrónica",
	DocTypeBoletaExenta:       "Boleta Exenta",
	DocTypeGuiaDespacho:       "Guía de Despacho",
	DocTypeNotaDebito:         "Nota de Débito",
	DocTypeNotaCredito:        "Nota de Crédito",
}

// IsValidDocumentType indica si el código pertenece a la enumeración cerrada de DTEs.
func IsValidDocumentType(code uint) bool {
	_, ok := documentTypeNames[code]
	return ok
}

// DocumentTypeName devuelve el nombre de despliegue del tipo de documento,
// o "Tipo <n>" si el código no está en el catálogo.
func DocumentTypeName(code uint) string {
	if name, ok := documentTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Tipo %d", code)
}
