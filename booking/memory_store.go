package booking

import (
	"sync"

	"github.com/vderm-x/vetcare-app/models"
)

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[uint]models.User
	appointments []models.Appointment
	nextID       uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// AddUser seeds a user record for tests.
func (s *MemoryStore) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Appointments returns a copy of everything persisted so far.
func (s *MemoryStore) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *MemoryStore) GetVet(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok || user.Role != models.RoleVet {
		return nil, ErrInvalidVet
	}
	return &user, nil
}

func (s *MemoryStore) GetUser(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrInvalidUser
	}
	return &user, nil
}

func (s *MemoryStore) CreateAppointment(a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	s.appointments = append(s.appointments, *a)
	return nil
}
