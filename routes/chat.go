package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/controllers"
)

// SetupChatRoutes configures all chat related routes
func SetupChatRoutes(app *fiber.App) {
	chat := app.Group("/chat")
	chat.Post("/conversations", controllers.CreateConversation)
	chat.Get("/conversations/:userId", controllers.GetUserConversations)
	chat.Post("/message", controllers.SendMessage)
	chat.Get("/messages/:conversationId", controllers.GetConversationMessages)
	chat.Delete("/conversations/:id", controllers.DeleteConversation)
}
