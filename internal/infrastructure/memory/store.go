// Package memory implementa el dataset de respaldo de la consola: un sustituto
// en memoria del gateway remoto con exactamente las mismas operaciones y formas
// de resultado. Las mutaciones viven solo lo que vive el proceso; el store
// jamás reclama durabilidad, por eso favorece semántica indulgente (remover un
// giro inexistente es éxito).
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/facturasur/caf-console/internal/domain"
	"github.com/facturasur/caf-console/internal/domain/entity"
)

// Latencias simuladas por clase de operación. Mantienen consistentes los
// estados de carga de la UI sea cual sea el camino que sirvió la petición.
const (
	latencyList   = 500 * time.Millisecond
	latencyGet    = 300 * time.Millisecond
	latencyCreate = 800 * time.Millisecond
	latencyUpload = 1200 * time.Millisecond
	latencyMutate = 600 * time.Millisecond
)

// Store dataset de respaldo en memoria, sembrado con el set de demostración.
// Instancia explícita e inyectable: cada test puede construir el suyo sin
// fugas de estado entre tests.
type Store struct {
	mu        sync.RWMutex
	companies []entity.Company
	cafs      map[string][]entity.CAF // companyID -> CAFs
	nextID    int
	latency   bool
}

// Option configura el Store.
type Option func(*Store)

// WithoutLatency desactiva la latencia simulada (para tests).
func WithoutLatency() Option {
	return func(s *Store) { s.latency = false }
}

// NewStore construye el store sembrado.
func NewStore(opts ...Option) *Store {
	s := &Store{
		companies: seedCompanies(),
		cafs:      seedCAFs(),
		latency:   true,
	}
	s.nextID = len(s.companies) + 1
	for _, o := range opts {
		o(s)
	}
	return s
}

// simulate duerme la latencia configurada respetando la cancelación del ctx.
func (s *Store) simulate(ctx context.Context, d time.Duration) error {
	if !s.latency {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ── Empresas ──────────────────────────────────────────────────────────────────

// ListCompanies devuelve todas las empresas (copias, nunca referencias al
// estado interno).
func (s *Store) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	if err := s.simulate(ctx, latencyList); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Company, len(s.companies))
	for i, c := range s.companies {
		out[i] = copyCompany(c)
	}
	return out, nil
}

// GetCompany busca una empresa por ID.
func (s *Store) GetCompany(ctx context.Context, companyID string) (*entity.Company, error) {
	if err := s.simulate(ctx, latencyGet); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.ID == companyID {
			cp := copyCompany(c)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
}

// CreateCompany asigna un ID monotónico y agrega la empresa.
// domain.ErrDuplicate si el RUT ya existe en el dataset.
func (s *Store) CreateCompany(ctx context.Context, draft entity.Company) (*entity.Company, error) {
	if err := s.simulate(ctx, latencyCreate); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.Code == draft.Code {
			return nil, fmt.Errorf("%w: RUT %s ya registrado", domain.ErrDuplicate, draft.Code)
		}
	}
	created := draft
	created.ID = strconv.Itoa(s.nextID)
	s.nextID++
	created.CommercialActivities = nil
	s.companies = append(s.companies, created)
	if _, ok := s.cafs[created.ID]; !ok {
		s.cafs[created.ID] = []entity.CAF{}
	}
	cp := copyCompany(created)
	return &cp, nil
}

// ── Giros comerciales ─────────────────────────────────────────────────────────

// ListCommercialActivities devuelve los giros en orden de inserción.
func (s *Store) ListCommercialActivities(ctx context.Context, companyID string) ([]entity.CommercialActivity, error) {
	if err := s.simulate(ctx, latencyGet); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(companyID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	out := make([]entity.CommercialActivity, len(s.companies[idx].CommercialActivities))
	copy(out, s.companies[idx].CommercialActivities)
	return out, nil
}

// AddCommercialActivity agrega el giro al final del set de la empresa.
func (s *Store) AddCommercialActivity(ctx context.Context, companyID string, activity entity.CommercialActivity) error {
	if err := s.simulate(ctx, latencyMutate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(companyID)
	if idx < 0 {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	activity.ID = uuid.NewString()
	s.companies[idx].CommercialActivities = append(s.companies[idx].CommercialActivities, activity)
	return nil
}

// RemoveCommercialActivity remueve el giro por ID. Un ID inexistente en una
// empresa existente es no-op exitoso (idempotente).
func (s *Store) RemoveCommercialActivity(ctx context.Context, companyID, activityID string) error {
	if err := s.simulate(ctx, latencyMutate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(companyID)
	if idx < 0 {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	activities := s.companies[idx].CommercialActivities
	for i, a := range activities {
		if a.ID == activityID {
			s.companies[idx].CommercialActivities = append(activities[:i:i], activities[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── CAFs ──────────────────────────────────────────────────────────────────────

// UploadCAF sintetiza el registro CAF desde los metadatos embebidos en el
// documento: rango, tipo y fecha de autorización salen del XML, la vigencia
// es la que otorga el SII (6 meses desde la autorización) y el cursor parte
// en el folio inicial. El RUT emisor se toma de la empresa destino; el RE del
// documento solo se usa si la empresa no tiene código (no debería ocurrir).
func (s *Store) UploadCAF(ctx context.Context, companyID string, document []byte) (*entity.CAF, error) {
	if err := s.simulate(ctx, latencyUpload); err != nil {
		return nil, err
	}

	meta, err := parseCAFDocument(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(companyID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	code := s.companies[idx].Code
	if code == "" {
		code = meta.companyCode
	}

	caf := entity.CAF{
		ID:                "caf-" + uuid.NewString(),
		CompanyCode:       code,
		DocumentType:      meta.documentType,
		InitialFolios:     meta.initialFolios,
		FinalFolios:       meta.finalFolios,
		CurrentFolios:     meta.initialFolios,
		AuthorizationDate: meta.authorizationDate,
		ExpirationDate:    meta.authorizationDate.Add(cafValidity),
	}
	s.cafs[companyID] = append(s.cafs[companyID], caf)
	return &caf, nil
}

// ListCompanyCAFs devuelve los CAFs de la empresa; vacío si no tiene.
func (s *Store) ListCompanyCAFs(ctx context.Context, companyID string) ([]entity.CAF, error) {
	if err := s.simulate(ctx, latencyList); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.CAF, len(s.cafs[companyID]))
	copy(out, s.cafs[companyID])
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// indexOf busca el índice de la empresa; requiere lock tomado.
func (s *Store) indexOf(companyID string) int {
	for i, c := range s.companies {
		if c.ID == companyID {
			return i
		}
	}
	return -1
}

func copyCompany(c entity.Company) entity.Company {
	cp := c
	if c.CommercialActivities != nil {
		cp.CommercialActivities = make([]entity.CommercialActivity, len(c.CommercialActivities))
		copy(cp.CommercialActivities, c.CommercialActivities)
	}
	return cp
}
