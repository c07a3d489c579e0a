package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/controllers"
)

// SetupDiagnosisRoutes configures the diagnosis history routes
func SetupDiagnosisRoutes(app *fiber.App) {
	diagnosis := app.Group("/diagnosis")
	diagnosis.Post("/save", controllers.SaveDiagnosis)
	diagnosis.Get("/user/:userId", controllers.GetUserDiagnosisHistory)
	diagnosis.Get("/:id", controllers.GetDiagnosis)
}
