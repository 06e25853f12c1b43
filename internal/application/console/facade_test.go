package console_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturasur/caf-console/internal/application/console"
	"github.com/facturasur/caf-console/internal/application/dto"
	"github.com/facturasur/caf-console/internal/domain"
	"github.com/facturasur/caf-console/internal/domain/entity"
	"github.com/facturasur/caf-console/internal/domain/folio"
	"github.com/facturasur/caf-console/internal/infrastructure/memory"
	"github.com/facturasur/caf-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles: un gateway guionado que responde siempre el mismo error y cuenta
// las llamadas que recibe.
// ──────────────────────────────────────────────────────────────────────────────

type scriptedGateway struct {
	err   error
	calls int
}

func (g *scriptedGateway) ListCompanies(context.Context) ([]entity.Company, error) {
	g.calls++
	return nil, g.err
}

func (g *scriptedGateway) GetCompany(context.Context, string) (*entity.Company, error) {
	g.calls++
	return nil, g.err
}

func (g *scriptedGateway) CreateCompany(context.Context, entity.Company) (*entity.Company, error) {
	g.calls++
	return nil, g.err
}

func (g *scriptedGateway) ListCommercialActivities(context.Context, string) ([]entity.CommercialActivity, error) {
	g.calls++
	return nil, g.err
}

func (g *scriptedGateway) AddCommercialActivity(context.Context, string, entity.CommercialActivity) error {
	g.calls++
	return g.err
}

func (g *scriptedGateway) RemoveCommercialActivity(context.Context, string, string) error {
	g.calls++
	return g.err
}

func (g *scriptedGateway) UploadCAF(context.Context, string, []byte) (*entity.CAF, error) {
	g.calls++
	return nil, g.err
}

func (g *scriptedGateway) ListCompanyCAFs(context.Context, string) ([]entity.CAF, error) {
	g.calls++
	return nil, g.err
}

type scriptedProber struct{ err error }

func (p scriptedProber) Ping(context.Context) error { return p.err }

func unreachable() error {
	return fmt.Errorf("%w: connection refused", domain.ErrRemoteUnreachable)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func newFacade(remote console.Gateway, fallback console.Gateway) *console.Facade {
	return console.New(remote, nil, fallback, testLogger())
}

const demoCAFXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<AUTORIZACION><CAF version="1.0"><DA>
<RE>33333333-3</RE><RS>Servicios Profesionales SpA</RS><TD>33</TD>
<RNG><D>1</D><H>1000</H></RNG><FA>2025-02-01</FA>
<RSAPK><M>mod</M><E>Aw==</E></RSAPK><IDK>100</IDK>
</DA><FRMA algoritmo="SHA1withRSA">firma</FRMA></CAF><RSASK>llave</RSASK></AUTORIZACION>`

// ──────────────────────────────────────────────────────────────────────────────
// Invariancia del respaldo: con el remoto deshabilitado por completo, cada
// operación resuelve con la misma forma de resultado que serviría el remoto.
// ──────────────────────────────────────────────────────────────────────────────

func TestFacade_InvarianciaConRemotoCaido(t *testing.T) {
	remote := &scriptedGateway{err: unreachable()}
	f := newFacade(remote, memory.NewStore(memory.WithoutLatency()))
	ctx := context.Background()

	companies, err := f.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)

	company, err := f.GetCompany(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "11111111-1", company.Code)

	created, err := f.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Nueva SpA", Code: "44444444-4"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	activities, err := f.ListCommercialActivities(ctx, "1")
	require.NoError(t, err)
	assert.NotEmpty(t, activities)

	err = f.AddCommercialActivity(ctx, "1", dto.AddCommercialActivityRequest{Code: "461000", Description: "Comercio mayorista"})
	require.NoError(t, err)

	err = f.RemoveCommercialActivity(ctx, "1", activities[0].ID)
	require.NoError(t, err)

	caf, err := f.UploadCAF(ctx, "3", []byte(demoCAFXML))
	require.NoError(t, err)
	assert.Equal(t, "33333333-3", caf.CompanyCode)

	cafs, err := f.ListCompanyCAFs(ctx, "3")
	require.NoError(t, err)
	require.Len(t, cafs.Items, 1)

	// Cada operación intentó primero el remoto antes de degradar.
	assert.Equal(t, 8, remote.calls)
}

// Sin remoto configurado (nil) el comportamiento es idéntico: directo al respaldo.
func TestFacade_SinRemotoConfigurado(t *testing.T) {
	f := newFacade(nil, memory.NewStore(memory.WithoutLatency()))

	companies, err := f.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Len(t, companies, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propagación de errores de aplicación: un rechazo estructurado del remoto
// JAMÁS habilita el respaldo; enmascararlo fabricaría éxito sobre un error
// de validación real.
// ──────────────────────────────────────────────────────────────────────────────

func TestFacade_RechazoDeAplicacionNoDegrada(t *testing.T) {
	remote := &scriptedGateway{err: fmt.Errorf("%w: RUT 11111111-1 ya registrado", domain.ErrDuplicate)}
	fallback := &scriptedGateway{}
	f := newFacade(remote, fallback)

	_, err := f.CreateCompany(context.Background(), dto.CreateCompanyRequest{Name: "Clon", Code: "11111111-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, remote.calls)
	assert.Zero(t, fallback.calls, "un rechazo de aplicación no debe tocar el respaldo")
}

func TestFacade_NotFoundDelRemotoSePropaga(t *testing.T) {
	remote := &scriptedGateway{err: fmt.Errorf("%w: empresa x", domain.ErrNotFound)}
	fallback := &scriptedGateway{}
	f := newFacade(remote, fallback)

	_, err := f.GetCompany(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, fallback.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa: la entrada malformada se rechaza antes de intentar
// cualquier camino, remoto o respaldo.
// ──────────────────────────────────────────────────────────────────────────────

func TestFacade_RUTMalformadoNoTocaNingunCamino(t *testing.T) {
	remote := &scriptedGateway{}
	fallback := &scriptedGateway{}
	f := newFacade(remote, fallback)

	_, err := f.CreateCompany(context.Background(), dto.CreateCompanyRequest{Name: "Empresa", Code: "1234"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, remote.calls)
	assert.Zero(t, fallback.calls, "la validación sintáctica corre antes de cualquier mutación")
}

func TestFacade_NormalizaRUTAntesDeCrear(t *testing.T) {
	f := newFacade(nil, memory.NewStore(memory.WithoutLatency()))

	created, err := f.CreateCompany(context.Background(), dto.CreateCompanyRequest{Name: "Puntos SpA", Code: "12.345.678-5"})
	require.NoError(t, err)
	assert.Equal(t, "12345678-5", created.Code)
}

func TestFacade_GiroConCamposVacios(t *testing.T) {
	remote := &scriptedGateway{}
	f := newFacade(remote, &scriptedGateway{})

	err := f.AddCommercialActivity(context.Background(), "1", dto.AddCommercialActivityRequest{Code: "  ", Description: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, remote.calls)
}

func TestFacade_DocumentoVacio(t *testing.T) {
	remote := &scriptedGateway{}
	f := newFacade(remote, &scriptedGateway{})

	_, err := f.UploadCAF(context.Background(), "1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, remote.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decoración con el clasificador: el listado de CAFs trae estado y métricas
// recalculadas contra el reloj inyectado.
// ──────────────────────────────────────────────────────────────────────────────

func TestFacade_ListCompanyCAFsClasifica(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	f := newFacade(nil, memory.NewStore(memory.WithoutLatency())).
		WithClock(func() time.Time { return fixed })

	out, err := f.ListCompanyCAFs(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	facturas := out.Items[0] // caf-1: 249/1000 usados, expira 2024-12-31
	assert.Equal(t, folio.StatusActive, facturas.Status)
	assert.InDelta(t, 24.9, facturas.UsagePercentage, 1e-9)
	assert.Equal(t, "Factura Electrónica", facturas.DocumentTypeName)

	boletas := out.Items[1] // caf-2: 449/500 usados, expira 2024-06-30
	assert.Equal(t, folio.StatusWarning, boletas.Status, "a 15 días de expirar debe advertir")
	assert.Equal(t, "Boleta Electrónica", boletas.DocumentTypeName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sondeo de disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestFacade_Available(t *testing.T) {
	ctx := context.Background()

	sinProber := console.New(nil, nil, memory.NewStore(memory.WithoutLatency()), testLogger())
	assert.False(t, sinProber.Available(ctx))

	arriba := console.New(nil, scriptedProber{}, memory.NewStore(memory.WithoutLatency()), testLogger())
	assert.True(t, arriba.Available(ctx))

	abajo := console.New(nil, scriptedProber{err: unreachable()}, memory.NewStore(memory.WithoutLatency()), testLogger())
	assert.False(t, abajo.Available(ctx))
}
