package chat

import (
	"sort"
	"sync"
	"time"

	"github.com/vderm-x/vetcare-app/models"
)

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[uint]models.ChatConversation
	messages      map[uint][]models.ChatMessage
	diagnoses     map[uint]models.DiagnosisHistory
	nextConvID    uint
	nextMsgID     uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[uint]models.ChatConversation),
		messages:      make(map[uint][]models.ChatMessage),
		diagnoses:     make(map[uint]models.DiagnosisHistory),
		nextConvID:    1,
		nextMsgID:     1,
	}
}

// AddDiagnosis seeds a diagnosis record for tests.
func (s *MemoryStore) AddDiagnosis(d models.DiagnosisHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnoses[d.ID] = d
}

func (s *MemoryStore) CreateConversation(conv *models.ChatConversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.ID = s.nextConvID
	s.nextConvID++
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	s.conversations[conv.ID] = *conv
	return nil
}

func (s *MemoryStore) GetConversation(id uint) (*models.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return &conv, nil
}

func (s *MemoryStore) ListConversations(userID uint) ([]models.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	convs := make([]models.ChatConversation, 0)
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			convs = append(convs, conv)
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (s *MemoryStore) GetDiagnosis(id uint) (*models.DiagnosisHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	diagnosis, ok := s.diagnoses[id]
	if !ok {
		return nil, ErrDiagnosisNotFound
	}
	return &diagnosis, nil
}

func (s *MemoryStore) AppendExchange(conversationID uint, userMsg, aiMsg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return ErrConversationNotFound
	}

	for _, msg := range []*models.ChatMessage{userMsg, aiMsg} {
		msg.ID = s.nextMsgID
		s.nextMsgID++
		s.messages[conversationID] = append(s.messages[conversationID], *msg)
	}

	conv.UpdatedAt = time.Now()
	s.conversations[conversationID] = conv
	return nil
}

func (s *MemoryStore) ListMessages(conversationID uint) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]models.ChatMessage, len(s.messages[conversationID]))
	copy(messages, s.messages[conversationID])
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (s *MemoryStore) DeleteConversation(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return ErrConversationNotFound
	}
	delete(s.conversations, id)
	delete(s.messages, id)
	return nil
}
