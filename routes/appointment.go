package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/controllers"
	"github.com/vderm-x/vetcare-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/user/:userId", controllers.GetUserAppointments)
	appointment.Get("/vet/:vetId", middleware.RequireVetRole(), controllers.GetVetAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Patch("/:id/status", middleware.RequireVetRole(), controllers.UpdateAppointmentStatus)
	appointment.Delete("/:id", controllers.CancelAppointment)
}
