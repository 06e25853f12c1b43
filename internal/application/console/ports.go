package console

import (
	"context"

	"github.com/facturasur/caf-console/internal/domain/entity"
)

// Gateway define el conjunto de operaciones del gateway de facturación que la
// consola consume. Lo implementan tanto el cliente HTTP del servicio remoto
// como el dataset de respaldo en memoria: ambos caminos devuelven resultados
// con forma y semántica idénticas, el llamador no puede distinguirlos.
type Gateway interface {
	ListCompanies(ctx context.Context) ([]entity.Company, error)
	GetCompany(ctx context.Context, companyID string) (*entity.Company, error)

	// CreateCompany asigna ID y agrega la empresa. Devuelve domain.ErrDuplicate
	// si el RUT ya existe.
	CreateCompany(ctx context.Context, draft entity.Company) (*entity.Company, error)

	ListCommercialActivities(ctx context.Context, companyID string) ([]entity.CommercialActivity, error)
	AddCommercialActivity(ctx context.Context, companyID string, activity entity.CommercialActivity) error

	// RemoveCommercialActivity es idempotente: remover un giro inexistente de
	// una empresa existente es éxito sin efecto.
	RemoveCommercialActivity(ctx context.Context, companyID, activityID string) error

	// UploadCAF entrega el documento de autorización crudo (XML SII) y recibe
	// el registro CAF ya poblado. Devuelve domain.ErrInvalidInput si el
	// documento no está bien formado.
	UploadCAF(ctx context.Context, companyID string, document []byte) (*entity.CAF, error)

	ListCompanyCAFs(ctx context.Context, companyID string) ([]entity.CAF, error)
}

// Prober sondeo liviano de disponibilidad del servicio remoto. Solo informa a
// operadores: su resultado nunca cambia la forma de los datos servidos.
type Prober interface {
	Ping(ctx context.Context) error
}
