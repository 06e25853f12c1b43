// Package folio deriva el estado operacional de un CAF a partir de su rango
// numérico y su vigencia temporal. Es lógica pura: sin I/O ni estado, el
// reloj se inyecta para que el resultado sea reproducible en tests.
package folio

import (
	"time"

	"github.com/facturasur/caf-console/internal/domain/entity"
)

// Status clasificación operacional de un CAF.
type Status string

const (
	StatusActive  Status = "active"
	StatusCaution Status = "caution"
	StatusWarning Status = "warning"
	StatusExpired Status = "expired"
)

// Umbrales de clasificación.
const (
	warningDays         = 30.0 // días a la expiración bajo los cuales se advierte
	warningUsagePercent = 90.0
	cautionUsagePercent = 70.0
)

// Summary métricas de uso y clasificación de un CAF en un instante dado.
type Summary struct {
	Status          Status  `json:"status"`
	FoliosUsed      int64   `json:"foliosUsed"`
	TotalFolios     int64   `json:"totalFolios"`
	UsagePercentage float64 `json:"usagePercentage"`
	DaysToExpiry    float64 `json:"daysToExpiry"`
}

// Compute calcula las métricas de uso y la clasificación del CAF contra el
// instante now. Nunca se cachea: un CAF transiciona a "expired" en silencio,
// sin evento alguno, por lo que cada render debe reevaluar contra el reloj.
//
// Precedencia estricta, primera regla que calza gana:
//
//  1. expired  — ya venció.
//  2. warning  — vence en menos de 30 días O uso sobre 90 %.
//  3. caution  — uso sobre 70 %.
//  4. active   — el resto.
//
// La expiración domina siempre al uso: un rango agotado pero vigente es menos
// urgente que uno por vencer. El orden es contrato observable, no reordenar.
//
// Un cursor por debajo del folio inicial solo puede venir de un registro
// remoto corrupto; el uso se fija en cero en vez de producir porcentajes
// negativos (el cursor crudo sigue visible en la entidad).
func Compute(caf entity.CAF, now time.Time) Summary {
	used := caf.CurrentFolios - caf.InitialFolios
	if used < 0 {
		used = 0
	}
	total := caf.FinalFolios - caf.InitialFolios + 1
	usage := 100 * float64(used) / float64(total)
	days := caf.ExpirationDate.Sub(now).Hours() / 24

	var status Status
	switch {
	case days < 0:
		status = StatusExpired
	case days < warningDays || usage > warningUsagePercent:
		status = StatusWarning
	case usage > cautionUsagePercent:
		status = StatusCaution
	default:
		status = StatusActive
	}

	return Summary{
		Status:          status,
		FoliosUsed:      used,
		TotalFolios:     total,
		UsagePercentage: usage,
		DaysToExpiry:    days,
	}
}

// Exhausted indica si el rango está completamente consumido
// (cursor en FinalFolios+1).
func Exhausted(caf entity.CAF) bool {
	return caf.CurrentFolios > caf.FinalFolios
}
