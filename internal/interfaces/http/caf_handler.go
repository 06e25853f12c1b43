package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturasur/caf-console/internal/application/console"
	"github.com/facturasur/caf-console/internal/application/dto"
)

// CAFHandler maneja la carga y el listado de CAFs de una empresa.
type CAFHandler struct {
	facade *console.Facade
}

// NewCAFHandler construye el handler inyectando la fachada.
func NewCAFHandler(facade *console.Facade) *CAFHandler {
	return &CAFHandler{facade: facade}
}

// Upload godoc
// @Summary      Cargar documento de autorización de folios (CAF)
// @Tags         cafs
// @Accept       xml
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      201  {object}  entity.CAF
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/cafs [post]
func (h *CAFHandler) Upload(c *fiber.Ctx) error {
	document := c.Body()
	if len(document) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_DOCUMENT", Message: "documento CAF vacío"})
	}
	out, err := h.facade.UploadCAF(c.Context(), c.Params("id"), document)
	if err != nil {
		return replyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar CAFs de la empresa con su clasificación de estado
// @Tags         cafs
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CAFListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/cafs [get]
func (h *CAFHandler) List(c *fiber.Ctx) error {
	out, err := h.facade.ListCompanyCAFs(c.Context(), c.Params("id"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(out)
}
