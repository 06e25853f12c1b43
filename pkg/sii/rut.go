// Package sii contiene catálogos y validaciones alineados a la documentación
// de Factura Electrónica del Servicio de Impuestos Internos (SII, Chile).
package sii

import (
	"fmt"
	"regexp"
	"strings"
)

// rutPattern formato aceptado por la consola: dígitos, guión y un dígito
// verificador (número o k/K). Sin puntos de miles.
var rutPattern = regexp.MustCompile(`^[0-9]+-[0-9kK]$`)

// ValidateRUTFormat valida que el RUT tenga el formato "<dígitos>-<dv>".
// Es una validación puramente sintáctica: NO verifica el dígito según el
// algoritmo módulo 11; el gateway remoto es quien rechaza RUTs con DV incorrecto.
func ValidateRUTFormat(rut string) error {
	if !rutPattern.MatchString(rut) {
		return fmt.Errorf("sii: RUT %q inválido, formato esperado 12345678-9", rut)
	}
	return nil
}

// ComputeRUTVerificationDigit calcula el dígito verificador módulo 11 para el
// cuerpo del RUT (solo dígitos, sin DV). Devuelve '0'-'9' o 'K'.
// Útil para completar RUTs en herramientas de seed/demo.
func ComputeRUTVerificationDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("sii: cuerpo de RUT vacío")
	}
	var sum, factor = 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("sii: cuerpo de RUT %q contiene caracteres no numéricos", body)
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch rest := 11 - sum%11; rest {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + rest), nil
	}
}

// NormalizeRUT elimina puntos de miles y pasa el DV a mayúscula
// ("12.345.678-k" -> "12345678-K"). No valida el formato resultante.
func NormalizeRUT(rut string) string {
	return strings.ToUpper(strings.ReplaceAll(rut, ".", ""))
}
