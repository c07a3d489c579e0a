package booking

import (
	"errors"

	"github.com/vderm-x/vetcare-app/models"
	"gorm.io/gorm"
)

// GormStore resolves booking parties and persists appointments through the
// shared gorm handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetVet(id uint) (*models.User, error) {
	var vet models.User
	err := s.db.Where("id = ? AND role = ?", id, models.RoleVet).First(&vet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVet
		}
		return nil, err
	}
	return &vet, nil
}

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidUser
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateAppointment(a *models.Appointment) error {
	return s.db.Create(a).Error
}
