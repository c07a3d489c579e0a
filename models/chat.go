package models

import (
	"time"

	"gorm.io/gorm"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type ChatConversation struct {
	gorm.Model
	UserID      uint              `json:"user_id"`
	User        User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DiagnosisID *uint             `json:"diagnosis_id,omitempty"`
	Diagnosis   *DiagnosisHistory `json:"diagnosis,omitempty" gorm:"foreignKey:DiagnosisID"`
	Title       string            `json:"title"`
	Messages    []ChatMessage     `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

// MessageMetadata carries optional context attached to a message, such as
// the prediction that seeded a diagnosis-linked conversation.
type MessageMetadata struct {
	PredictionData map[string]interface{} `json:"predictionData,omitempty"`
}

type ChatMessage struct {
	gorm.Model
	ConversationID uint             `json:"conversation_id"`
	Role           MessageRole      `json:"role"`
	Content        string           `json:"content"`
	Timestamp      time.Time        `json:"timestamp"`
	Metadata       *MessageMetadata `json:"metadata,omitempty" gorm:"serializer:json"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}
