// Package remote implementa el cliente HTTP del gateway de facturación
// (factura-movil-gateway). Usa net/http de la stdlib; no requiere librerías
// de terceros.
//
// La frontera de clasificación de errores vive aquí: falla de conexión,
// timeout o respuesta corrupta se reportan como domain.ErrRemoteUnreachable
// (habilitan el respaldo); un 4xx con cuerpo estructurado es un rechazo de
// aplicación y se devuelve como *APIError, que la fachada propaga intacto.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facturasur/caf-console/internal/domain"
	"github.com/facturasur/caf-console/internal/domain/entity"
)

const maxResponseBytes = 1 << 20 // max 1 MB

// APIError rechazo de aplicación del gateway remoto (HTTP 4xx con cuerpo
// {code, message}). Unwrap lo mapea a la taxonomía de dominio para que
// errors.Is funcione a través de la fachada.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap traduce el status HTTP al error de dominio equivalente.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrDuplicate
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return nil
	}
}

// Client cliente JSON del gateway remoto.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	probeClient *http.Client
}

// NewClient construye el cliente con el presupuesto de timeout por operación.
// probeTimeout es el timeout corto del sondeo de disponibilidad.
func NewClient(baseURL string, timeout, probeTimeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		probeClient: &http.Client{Timeout: probeTimeout},
	}
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// ListCompanies lista las empresas registradas en el gateway.
func (c *Client) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	var out []entity.Company
	if err := c.do(ctx, http.MethodGet, "/companies", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCompany obtiene una empresa por ID.
func (c *Client) GetCompany(ctx context.Context, companyID string) (*entity.Company, error) {
	var out entity.Company
	if err := c.do(ctx, http.MethodGet, "/companies/"+companyID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCompany registra una nueva empresa.
func (c *Client) CreateCompany(ctx context.Context, draft entity.Company) (*entity.Company, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("remote: serializar empresa: %w", err)
	}
	var out entity.Company
	if err := c.do(ctx, http.MethodPost, "/companies", "application/json", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCommercialActivities lista los giros comerciales de una empresa.
func (c *Client) ListCommercialActivities(ctx context.Context, companyID string) ([]entity.CommercialActivity, error) {
	var out []entity.CommercialActivity
	path := "/companies/" + companyID + "/commercial-activities"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCommercialActivity agrega un giro comercial a la empresa.
func (c *Client) AddCommercialActivity(ctx context.Context, companyID string, activity entity.CommercialActivity) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("remote: serializar giro: %w", err)
	}
	path := "/companies/" + companyID + "/commercial-activities"
	return c.do(ctx, http.MethodPost, path, "application/json", payload, nil)
}

// RemoveCommercialActivity remueve un giro comercial por ID.
func (c *Client) RemoveCommercialActivity(ctx context.Context, companyID, activityID string) error {
	path := "/companies/" + companyID + "/commercial-activities/" + activityID
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// UploadCAF envía el XML de autorización crudo; el gateway lo parsea y
// devuelve el registro CAF poblado.
func (c *Client) UploadCAF(ctx context.Context, companyID string, document []byte) (*entity.CAF, error) {
	var out entity.CAF
	path := "/companies/" + companyID + "/cafs"
	if err := c.do(ctx, http.MethodPost, path, "application/xml", document, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCompanyCAFs lista los CAFs de una empresa.
func (c *Client) ListCompanyCAFs(ctx context.Context, companyID string) ([]entity.CAF, error) {
	var out []entity.CAF
	if err := c.do(ctx, http.MethodGet, "/companies/"+companyID+"/cafs", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping sondea /healthz con el timeout corto. Error = remoto no disponible.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("remote: crear request de sondeo: %w", err)
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnreachable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthz devolvió %d", domain.ErrRemoteUnreachable, resp.StatusCode)
	}
	return nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// do ejecuta la petición y decodifica la respuesta JSON en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("remote: crear request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Conexión rechazada, DNS, timeout del cliente o cancelación del ctx:
		// todas cuentan como inalcanzable.
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta de %s: %v", domain.ErrRemoteUnreachable, path, err)
	}

	switch {
	case resp.StatusCode >= 500:
		// Un gateway caído es, para el operador, lo mismo que uno ausente.
		return fmt.Errorf("%w: %s devolvió %d", domain.ErrRemoteUnreachable, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return c.parseAPIError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Respuesta 2xx indecodificable = transporte malformado.
		return fmt.Errorf("%w: respuesta corrupta de %s: %v", domain.ErrRemoteUnreachable, path, err)
	}
	return nil
}

// parseAPIError extrae el cuerpo estructurado {code, message} de un 4xx.
// Si el cuerpo no es JSON sigue siendo un rechazo de aplicación (el servidor
// respondió), nunca un caso de respaldo.
func (c *Client) parseAPIError(status int, raw []byte) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &APIError{StatusCode: status, Code: "REMOTE_REJECTION", Message: strings.TrimSpace(string(raw))}
	}
	return &APIError{StatusCode: status, Code: body.Code, Message: body.Message}
}
