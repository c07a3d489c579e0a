package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/controllers"
)

// SetupVetRoutes configures the vet directory routes
func SetupVetRoutes(app *fiber.App) {
	vets := app.Group("/vets")
	vets.Get("/", controllers.GetVets)
	vets.Get("/:id", controllers.GetVet)
}
