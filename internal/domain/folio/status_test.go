package folio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturasur/caf-console/internal/domain/entity"
	"github.com/facturasur/caf-console/internal/domain/folio"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: reloj fijo inyectado, un CAF base parametrizable.
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func buildCAF(initial, final, current int64, daysToExpiry float64) entity.CAF {
	return entity.CAF{
		ID:                "caf-test",
		CompanyCode:       "11111111-1",
		DocumentType:      33,
		InitialFolios:     initial,
		FinalFolios:       final,
		CurrentFolios:     current,
		AuthorizationDate: testNow.AddDate(0, -1, 0),
		ExpirationDate:    testNow.Add(time.Duration(daysToExpiry * 24 * float64(time.Hour))),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Precedencia de clasificación
// ──────────────────────────────────────────────────────────────────────────────

// La expiración domina siempre: un CAF vencido es "expired" sin importar el uso.
func TestCompute_ExpiradoDominaSiempre(t *testing.T) {
	for _, current := range []int64{1, 500, 950, 1001} {
		s := folio.Compute(buildCAF(1, 1000, current, -1), testNow)
		assert.Equal(t, folio.StatusExpired, s.Status,
			"con daysToExpiry < 0 el estado debe ser expired, cursor=%d", current)
	}
}

// Menos de 30 días a la expiración o uso sobre 90 % (no vencido) => warning.
func TestCompute_ReglasDeWarning(t *testing.T) {
	porVencer := folio.Compute(buildCAF(1, 1000, 100, 15), testNow)
	assert.Equal(t, folio.StatusWarning, porVencer.Status, "15 días a expirar => warning")

	usoAlto := folio.Compute(buildCAF(1, 1000, 950, 200), testNow)
	assert.Equal(t, folio.StatusWarning, usoAlto.Status, "uso > 90 %% => warning aunque expire lejos")
}

// Uso sobre 70 % sin calzar las reglas anteriores => caution; el resto, active.
func TestCompute_CautionYActive(t *testing.T) {
	caution := folio.Compute(buildCAF(1, 1000, 801, 200), testNow)
	assert.Equal(t, folio.StatusCaution, caution.Status, "80 %% de uso y expiración lejana => caution")

	active := folio.Compute(buildCAF(1, 1000, 250, 200), testNow)
	assert.Equal(t, folio.StatusActive, active.Status)
}

// Caso límite del contrato de precedencia: 95 % usado y 60 días a expirar
// debe ser warning (regla de uso), no caution. Reordenar las reglas cambia
// esta clasificación observable.
func TestCompute_PrecedenciaUsoSobreCaution(t *testing.T) {
	s := folio.Compute(buildCAF(1, 1000, 951, 60), testNow)
	assert.Equal(t, folio.StatusWarning, s.Status)
}

// Expiración exactamente ahora: daysToExpiry == 0 no es expired todavía,
// cae en warning por la regla de los 30 días.
func TestCompute_ExpiracionExactaEsWarning(t *testing.T) {
	s := folio.Compute(buildCAF(1, 1000, 100, 0), testNow)
	assert.Equal(t, folio.StatusWarning, s.Status)
	assert.InDelta(t, 0, s.DaysToExpiry, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios numéricos de referencia
// ──────────────────────────────────────────────────────────────────────────────

// Rango 1-1000 con cursor 950 y 200 días de vigencia: métricas exactas y
// warning por uso pese a la expiración lejana.
func TestCompute_EscenarioUsoAlto(t *testing.T) {
	s := folio.Compute(buildCAF(1, 1000, 950, 200), testNow)

	require.Equal(t, int64(949), s.FoliosUsed)
	require.Equal(t, int64(1000), s.TotalFolios)
	assert.InDelta(t, 94.9, s.UsagePercentage, 1e-9)
	assert.Equal(t, folio.StatusWarning, s.Status)
}

// Rango 1-500 con cursor 50 y solo 10 días de vigencia: warning por
// expiración aunque el uso sea bajo (9.8 %).
func TestCompute_EscenarioPorVencer(t *testing.T) {
	s := folio.Compute(buildCAF(1, 500, 50, 10), testNow)

	assert.InDelta(t, 9.8, s.UsagePercentage, 1e-9)
	assert.Equal(t, folio.StatusWarning, s.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

// El porcentaje de uso es monótono no decreciente a medida que el cursor
// avanza hacia FinalFolios+1, y llega exactamente a 100 al agotarse.
func TestCompute_UsoMonotono(t *testing.T) {
	const initial, final = int64(100), int64(299)
	prev := -1.0
	for current := initial; current <= final+1; current++ {
		s := folio.Compute(buildCAF(initial, final, current, 200), testNow)
		require.GreaterOrEqual(t, s.UsagePercentage, prev,
			"el uso no puede retroceder al avanzar el cursor (cursor=%d)", current)
		prev = s.UsagePercentage
	}
	assert.InDelta(t, 100, prev, 1e-9, "rango agotado debe marcar 100 %%")
}

// Mismo CAF y mismo instante producen siempre el mismo resultado.
func TestCompute_Determinista(t *testing.T) {
	caf := buildCAF(1, 1000, 450, 90)
	assert.Equal(t, folio.Compute(caf, testNow), folio.Compute(caf, testNow))
}

// Cursor bajo el folio inicial (registro remoto corrupto): el uso se fija en
// cero en vez de producir porcentajes negativos.
func TestCompute_CursorCorruptoSeFijaEnCero(t *testing.T) {
	s := folio.Compute(buildCAF(100, 199, 50, 200), testNow)
	assert.Equal(t, int64(0), s.FoliosUsed)
	assert.InDelta(t, 0, s.UsagePercentage, 1e-9)
	assert.Equal(t, folio.StatusActive, s.Status)
}

func TestExhausted(t *testing.T) {
	assert.False(t, folio.Exhausted(buildCAF(1, 100, 100, 200)), "último folio disponible no es agotado")
	assert.True(t, folio.Exhausted(buildCAF(1, 100, 101, 200)), "cursor en FinalFolios+1 es agotado")
}
