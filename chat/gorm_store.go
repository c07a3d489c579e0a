package chat

import (
	"errors"
	"time"

	"github.com/vderm-x/vetcare-app/models"
	"gorm.io/gorm"
)

// GormStore persists conversations and messages through the shared gorm handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateConversation(conv *models.ChatConversation) error {
	return s.db.Create(conv).Error
}

func (s *GormStore) GetConversation(id uint) (*models.ChatConversation, error) {
	var conv models.ChatConversation
	if err := s.db.First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (s *GormStore) ListConversations(userID uint) ([]models.ChatConversation, error) {
	convs := make([]models.ChatConversation, 0)
	err := s.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

func (s *GormStore) GetDiagnosis(id uint) (*models.DiagnosisHistory, error) {
	var diagnosis models.DiagnosisHistory
	if err := s.db.First(&diagnosis, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiagnosisNotFound
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (s *GormStore) AppendExchange(conversationID uint, userMsg, aiMsg *models.ChatMessage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userMsg).Error; err != nil {
			return err
		}
		if err := tx.Create(aiMsg).Error; err != nil {
			return err
		}
		return tx.Model(&models.ChatConversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (s *GormStore) ListMessages(conversationID uint) ([]models.ChatMessage, error) {
	messages := make([]models.ChatMessage, 0)
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}

func (s *GormStore) DeleteConversation(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChatConversation{}, id).Error
	})
}
