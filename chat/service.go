package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vderm-x/vetcare-app/ai"
	"github.com/vderm-x/vetcare-app/models"
)

// ErrResponder marks a failed AI call so the boundary can distinguish it
// from a storage failure.
var ErrResponder = errors.New("responder failed")

// Service implements the conversation lifecycle: create/list/delete
// conversations and the two-message send exchange against the AI responder.
type Service struct {
	store     Store
	responder ai.Responder
}

func NewService(store Store, responder ai.Responder) *Service {
	return &Service{store: store, responder: responder}
}

// CreateConversation persists a conversation for userID. A linked diagnosis
// must exist; when no title is given one is generated from the diagnosis
// classification and the current date.
func (s *Service) CreateConversation(userID uint, diagnosisID *uint, title string) (*models.ChatConversation, error) {
	var classification string
	if diagnosisID != nil {
		diagnosis, err := s.store.GetDiagnosis(*diagnosisID)
		if err != nil {
			return nil, err
		}
		classification = diagnosis.Prediction.Classification
	}

	if title == "" {
		title = DefaultTitle(classification, time.Now())
	}

	conv := &models.ChatConversation{
		UserID:      userID,
		DiagnosisID: diagnosisID,
		Title:       title,
	}
	if err := s.store.CreateConversation(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Service) ListConversations(userID uint) ([]models.ChatConversation, error) {
	return s.store.ListConversations(userID)
}

// SendMessage appends a user message and the assistant's reply to the
// conversation. The responder is called before anything is persisted and both
// messages are stored atomically, so a failed AI call commits nothing.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID uint, content string) (*models.ChatMessage, *models.ChatMessage, error) {
	conv, err := s.store.GetConversation(conversationID)
	if err != nil {
		return nil, nil, err
	}
	if conv.UserID != userID {
		return nil, nil, ErrNotOwner
	}

	var predictionContext string
	var metadata *models.MessageMetadata
	if conv.DiagnosisID != nil {
		if diagnosis, err := s.store.GetDiagnosis(*conv.DiagnosisID); err == nil {
			predictionContext = diagnosis.Prediction.Classification
			metadata = &models.MessageMetadata{
				PredictionData: map[string]interface{}{
					"classification": diagnosis.Prediction.Classification,
					"confidence":     diagnosis.Prediction.Confidence,
				},
			}
		}
	}

	sentAt := time.Now()
	reply, err := s.responder.Respond(ctx, content, predictionContext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrResponder, err)
	}

	userMsg := &models.ChatMessage{
		ConversationID: conversationID,
		Role:           models.MessageRoleUser,
		Content:        content,
		Timestamp:      sentAt,
		Metadata:       metadata,
	}
	aiMsg := &models.ChatMessage{
		ConversationID: conversationID,
		Role:           models.MessageRoleAssistant,
		Content:        reply,
		Timestamp:      time.Now(),
	}

	if err := s.store.AppendExchange(conversationID, userMsg, aiMsg); err != nil {
		return nil, nil, err
	}
	return userMsg, aiMsg, nil
}

func (s *Service) Messages(conversationID uint) ([]models.ChatMessage, error) {
	return s.store.ListMessages(conversationID)
}

// DeleteConversation removes a conversation and its messages after checking
// ownership.
func (s *Service) DeleteConversation(id, userID uint) error {
	conv, err := s.store.GetConversation(id)
	if err != nil {
		return err
	}
	if conv.UserID != userID {
		return ErrNotOwner
	}
	return s.store.DeleteConversation(id)
}

// DefaultTitle builds the auto-generated conversation title,
// e.g. "Chat about Lumpy Skin - Jan 18".
func DefaultTitle(classification string, now time.Time) string {
	if classification != "" {
		return fmt.Sprintf("Chat about %s - %s", classification, now.Format("Jan 2"))
	}
	return fmt.Sprintf("New Conversation - %s", now.Format("Jan 2"))
}
