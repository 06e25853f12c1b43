package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturasur/caf-console/internal/application/console"
	"github.com/facturasur/caf-console/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Facade  *console.Facade
	AppName string
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sondeo de disponibilidad del remoto: señal pasiva para operadores.
	// La forma de los datos de las demás rutas no depende de este resultado.
	api.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(dto.StatusResponse{
			Service: deps.AppName,
			Remote:  deps.Facade.Available(c.Context()),
		})
	})

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.Facade)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/commercial-activities", companyHandler.ListActivities)
	companies.Post("/:id/commercial-activities", companyHandler.AddActivity)
	companies.Delete("/:id/commercial-activities/:activityId", companyHandler.RemoveActivity)

	cafHandler := NewCAFHandler(deps.Facade)
	companies.Post("/:id/cafs", cafHandler.Upload)
	companies.Get("/:id/cafs", cafHandler.List)
}
