package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/vderm-x/vetcare-app/ai"
	"github.com/vderm-x/vetcare-app/booking"
	"github.com/vderm-x/vetcare-app/chat"
	"github.com/vderm-x/vetcare-app/controllers"
	"github.com/vderm-x/vetcare-app/cron"
	"github.com/vderm-x/vetcare-app/db"
	"github.com/vderm-x/vetcare-app/redis"
	"github.com/vderm-x/vetcare-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	responder := ai.NewOpenAIResponder(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	controllers.ChatService = chat.NewService(chat.NewGormStore(db.DB), responder)
	controllers.BookingService = booking.NewService(booking.NewGormStore(db.DB))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("VetCare API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupVetRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupDiagnosisRoutes(app)
	routes.SetupChatRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
