// Package console implementa la fachada resiliente de la consola CAF: cada
// operación se intenta primero contra el gateway remoto y, solo ante falla de
// transporte, se reencamina en forma transparente al dataset de respaldo en
// memoria. Los errores de aplicación del remoto (RUT duplicado, documento
// malformado) se propagan intactos: enmascararlos con éxito fabricado del
// respaldo ocultaría errores de validación reales al usuario.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/facturasur/caf-console/internal/application/dto"
	"github.com/facturasur/caf-console/internal/domain"
	"github.com/facturasur/caf-console/internal/domain/entity"
	"github.com/facturasur/caf-console/internal/domain/folio"
	"github.com/facturasur/caf-console/pkg/logger"
	"github.com/facturasur/caf-console/pkg/sii"
)

// Facade punto de entrada único para la capa de presentación.
type Facade struct {
	remote   Gateway // nil = sin remoto configurado, todo va al respaldo
	prober   Prober
	fallback Gateway
	log      *logger.Logger
	now      func() time.Time
}

// New construye la fachada. remote y prober pueden ser nil (modo demo);
// fallback es obligatorio. now permite inyectar el reloj en tests.
func New(remote Gateway, prober Prober, fallback Gateway, log *logger.Logger) *Facade {
	return &Facade{
		remote:   remote,
		prober:   prober,
		fallback: fallback,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza la fuente de tiempo usada para clasificar CAFs.
func (f *Facade) WithClock(now func() time.Time) *Facade {
	f.now = now
	return f
}

// shouldFallback decide si el error del camino remoto habilita el desvío al
// respaldo. Solo fallas de transporte califican; todo lo demás se propaga.
func (f *Facade) shouldFallback(err error) bool {
	return errors.Is(err, domain.ErrRemoteUnreachable)
}

// ListCompanies lista todas las empresas registradas.
func (f *Facade) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	if f.remote == nil {
		return f.fallback.ListCompanies(ctx)
	}
	out, err := f.remote.ListCompanies(ctx)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Msg("remoto inalcanzable, listando empresas desde respaldo")
		return f.fallback.ListCompanies(ctx)
	}
	return out, err
}

// GetCompany obtiene una empresa por ID. domain.ErrNotFound si no existe.
func (f *Facade) GetCompany(ctx context.Context, companyID string) (*entity.Company, error) {
	if f.remote == nil {
		return f.fallback.GetCompany(ctx, companyID)
	}
	out, err := f.remote.GetCompany(ctx, companyID)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Str("company_id", companyID).Msg("remoto inalcanzable, leyendo empresa desde respaldo")
		return f.fallback.GetCompany(ctx, companyID)
	}
	return out, err
}

// CreateCompany valida el RUT y crea la empresa. La validación sintáctica
// corre ANTES de intentar cualquier camino: un RUT malformado jamás toca el
// remoto ni el respaldo. domain.ErrDuplicate si el RUT ya existe.
func (f *Facade) CreateCompany(ctx context.Context, in dto.CreateCompanyRequest) (*entity.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre de la empresa es requerido", domain.ErrInvalidInput)
	}
	code := sii.NormalizeRUT(strings.TrimSpace(in.Code))
	if err := sii.ValidateRUTFormat(code); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	draft := entity.Company{
		Name:                  name,
		Code:                  code,
		FacturaMovilCompanyID: in.FacturaMovilCompanyID,
	}
	if f.remote == nil {
		return f.fallback.CreateCompany(ctx, draft)
	}
	out, err := f.remote.CreateCompany(ctx, draft)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Str("code", code).Msg("remoto inalcanzable, creando empresa en respaldo")
		return f.fallback.CreateCompany(ctx, draft)
	}
	return out, err
}

// ListCommercialActivities lista los giros comerciales de la empresa.
func (f *Facade) ListCommercialActivities(ctx context.Context, companyID string) ([]entity.CommercialActivity, error) {
	if f.remote == nil {
		return f.fallback.ListCommercialActivities(ctx, companyID)
	}
	out, err := f.remote.ListCommercialActivities(ctx, companyID)
	if f.shouldFallback(err) {
		return f.fallback.ListCommercialActivities(ctx, companyID)
	}
	return out, err
}

// AddCommercialActivity agrega un giro a la empresa. Código y descripción
// vacíos se rechazan antes de intentar cualquier camino.
func (f *Facade) AddCommercialActivity(ctx context.Context, companyID string, in dto.AddCommercialActivityRequest) error {
	activity := entity.CommercialActivity{
		Code:        strings.TrimSpace(in.Code),
		Description: strings.TrimSpace(in.Description),
	}
	if activity.Code == "" || activity.Description == "" {
		return fmt.Errorf("%w: código y descripción del giro son requeridos", domain.ErrInvalidInput)
	}
	if f.remote == nil {
		return f.fallback.AddCommercialActivity(ctx, companyID, activity)
	}
	err := f.remote.AddCommercialActivity(ctx, companyID, activity)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Str("company_id", companyID).Msg("remoto inalcanzable, agregando giro en respaldo")
		return f.fallback.AddCommercialActivity(ctx, companyID, activity)
	}
	return err
}

// RemoveCommercialActivity remueve un giro por ID. Idempotente: el segundo
// remove del mismo ID también es éxito.
func (f *Facade) RemoveCommercialActivity(ctx context.Context, companyID, activityID string) error {
	if f.remote == nil {
		return f.fallback.RemoveCommercialActivity(ctx, companyID, activityID)
	}
	err := f.remote.RemoveCommercialActivity(ctx, companyID, activityID)
	if f.shouldFallback(err) {
		return f.fallback.RemoveCommercialActivity(ctx, companyID, activityID)
	}
	return err
}

// UploadCAF entrega el documento de autorización al gateway y devuelve el CAF
// resultante. domain.ErrInvalidInput si el documento no está bien formado.
func (f *Facade) UploadCAF(ctx context.Context, companyID string, document []byte) (*entity.CAF, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: documento CAF vacío", domain.ErrInvalidInput)
	}
	if f.remote == nil {
		return f.fallback.UploadCAF(ctx, companyID, document)
	}
	out, err := f.remote.UploadCAF(ctx, companyID, document)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Str("company_id", companyID).Msg("remoto inalcanzable, registrando CAF en respaldo")
		return f.fallback.UploadCAF(ctx, companyID, document)
	}
	return out, err
}

// ListCompanyCAFs lista los CAFs de la empresa decorados con su clasificación
// de estado, recalculada contra el reloj en cada llamada.
func (f *Facade) ListCompanyCAFs(ctx context.Context, companyID string) (*dto.CAFListResponse, error) {
	cafs, err := f.listCompanyCAFs(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := f.now()
	items := make([]dto.CAFResponse, 0, len(cafs))
	for _, caf := range cafs {
		items = append(items, dto.CAFResponse{
			CAF:              caf,
			Summary:          folio.Compute(caf, now),
			DocumentTypeName: sii.DocumentTypeName(caf.DocumentType),
		})
	}
	return &dto.CAFListResponse{Items: items}, nil
}

func (f *Facade) listCompanyCAFs(ctx context.Context, companyID string) ([]entity.CAF, error) {
	if f.remote == nil {
		return f.fallback.ListCompanyCAFs(ctx, companyID)
	}
	out, err := f.remote.ListCompanyCAFs(ctx, companyID)
	if f.shouldFallback(err) {
		f.log.Warn().Err(err).Str("company_id", companyID).Msg("remoto inalcanzable, listando CAFs desde respaldo")
		return f.fallback.ListCompanyCAFs(ctx, companyID)
	}
	return out, err
}

// Available sondea si el gateway remoto responde. Señal puramente informativa.
func (f *Facade) Available(ctx context.Context) bool {
	if f.prober == nil {
		return false
	}
	return f.prober.Ping(ctx) == nil
}
