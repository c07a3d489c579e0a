package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/controllers"
	"github.com/vderm-x/vetcare-app/middleware"
)

// SetupAuthRoutes configures all account related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/signup", controllers.Signup)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/resend-otp", controllers.ResendOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
}
