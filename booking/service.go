package booking

import (
	"time"

	"github.com/vderm-x/vetcare-app/models"
)

// Service books appointments after resolving both parties: the vet must be
// an existing user holding the vet role, the owner must exist. Nothing is
// persisted when resolution fails.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Book creates a pending appointment between userID and vetID. The returned
// appointment carries the resolved user and vet profiles joined in.
func (s *Service) Book(userID, vetID uint, date time.Time, timeSlot, reason, imageURL string) (*models.Appointment, error) {
	vet, err := s.store.GetVet(vetID)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:   userID,
		VetID:    vetID,
		Date:     date,
		TimeSlot: timeSlot,
		Reason:   reason,
		ImageURL: imageURL,
		Status:   models.StatusPending,
	}
	if err := s.store.CreateAppointment(appointment); err != nil {
		return nil, err
	}

	appointment.User = *user
	appointment.Vet = *vet
	return appointment, nil
}
