package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/facturasur/caf-console/internal/application/console"
	"github.com/facturasur/caf-console/internal/application/dto"
	"github.com/facturasur/caf-console/internal/domain"
)

// CompanyHandler maneja las peticiones HTTP para empresas y sus giros comerciales.
type CompanyHandler struct {
	facade   *console.Facade
	validate *validator.Validate
}

// NewCompanyHandler construye el handler inyectando la fachada.
func NewCompanyHandler(facade *console.Facade) *CompanyHandler {
	return &CompanyHandler{facade: facade, validate: validator.New()}
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Success      200  {array}  entity.Company
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.facade.ListCompanies(c.Context())
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  entity.Company
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.facade.GetCompany(c.Context(), id)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  entity.Company
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.facade.CreateCompany(c.Context(), in)
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListActivities godoc
// @Summary      Listar giros comerciales de la empresa
// @Tags         companies
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {array}  entity.CommercialActivity
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/commercial-activities [get]
func (h *CompanyHandler) ListActivities(c *fiber.Ctx) error {
	out, err := h.facade.ListCommercialActivities(c.Context(), c.Params("id"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(out)
}

// AddActivity godoc
// @Summary      Agregar giro comercial
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.AddCommercialActivityRequest  true  "Giro comercial"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/commercial-activities [post]
func (h *CompanyHandler) AddActivity(c *fiber.Ctx) error {
	var in dto.AddCommercialActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.facade.AddCommercialActivity(c.Context(), c.Params("id"), in); err != nil {
		return replyError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveActivity godoc
// @Summary      Remover giro comercial (idempotente)
// @Tags         companies
// @Param        id          path  string  true  "ID de la empresa"
// @Param        activityId  path  string  true  "ID del giro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/commercial-activities/{activityId} [delete]
func (h *CompanyHandler) RemoveActivity(c *fiber.Ctx) error {
	if err := h.facade.RemoveCommercialActivity(c.Context(), c.Params("id"), c.Params("activityId")); err != nil {
		return replyError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// replyError mapea la taxonomía de dominio al status HTTP. El respaldo ya
// absorbió ErrRemoteUnreachable en la fachada; si llega aquí es porque ambos
// caminos fallaron.
func replyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
