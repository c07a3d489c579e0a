package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vderm-x/vetcare-app/chat"
	"github.com/vderm-x/vetcare-app/utils"
)

// ChatService is wired at startup with the gorm store and the AI responder.
var ChatService *chat.Service

// CreateConversation starts a chat thread, optionally linked to a diagnosis
func CreateConversation(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID is required in headers",
		})
	}

	type ConversationInput struct {
		DiagnosisID *uint  `json:"diagnosisId"`
		Title       string `json:"title"`
	}
	input := new(ConversationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	conv, err := ChatService.CreateConversation(userID, input.DiagnosisID, input.Title)
	if err != nil {
		if errors.Is(err, chat.ErrDiagnosisNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid diagnosis ID",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create conversation",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetUserConversations lists a user's conversations, most recently updated
// first
func GetUserConversations(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	convs, err := ChatService.ListConversations(uint(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch conversations",
			Error:   err.Error(),
		})
	}
	return c.JSON(convs)
}

// SendMessage appends a user message and returns it together with the AI
// reply
func SendMessage(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID is required in headers",
		})
	}

	type MessageInput struct {
		ConversationID uint   `json:"conversationId"`
		Content        string `json:"content"`
	}
	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.ConversationID == 0 || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "conversationId and content are required",
		})
	}

	userMsg, aiMsg, err := ChatService.SendMessage(c.Context(), userID, input.ConversationID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Conversation not found",
			})
		case errors.Is(err, chat.ErrNotOwner):
			return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
				Message: "You can only send messages in your own conversations",
			})
		case errors.Is(err, chat.ErrResponder):
			return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
				Message: "Failed to get AI response",
				Error:   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to send message",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"userMessage": userMsg,
		"aiMessage":   aiMsg,
	})
}

// GetConversationMessages lists a conversation's messages oldest-first
func GetConversationMessages(c *fiber.Ctx) error {
	conversationID, err := strconv.ParseUint(c.Params("conversationId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid conversation ID",
		})
	}

	messages, err := ChatService.Messages(uint(conversationID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}

// DeleteConversation removes a conversation and its messages
func DeleteConversation(c *fiber.Ctx) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID is required in headers",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid conversation ID",
		})
	}

	if err := ChatService.DeleteConversation(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, chat.ErrConversationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Conversation not found",
			})
		case errors.Is(err, chat.ErrNotOwner):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "You can only delete your own conversations",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to delete conversation",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Conversation deleted successfully",
	})
}
