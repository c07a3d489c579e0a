package chat

import (
	"errors"

	"github.com/vderm-x/vetcare-app/models"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrDiagnosisNotFound    = errors.New("diagnosis not found")
	ErrNotOwner             = errors.New("conversation does not belong to user")
)

// Store is the persistence boundary of the chat service. AppendExchange must
// commit both messages atomically: implementations persist either the full
// user/assistant pair or nothing.
type Store interface {
	CreateConversation(conv *models.ChatConversation) error
	GetConversation(id uint) (*models.ChatConversation, error)
	ListConversations(userID uint) ([]models.ChatConversation, error)
	GetDiagnosis(id uint) (*models.DiagnosisHistory, error)
	AppendExchange(conversationID uint, userMsg, aiMsg *models.ChatMessage) error
	ListMessages(conversationID uint) ([]models.ChatMessage, error)
	DeleteConversation(id uint) error
}
