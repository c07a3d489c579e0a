package booking

import (
	"errors"

	"github.com/vderm-x/vetcare-app/models"
)

var (
	ErrInvalidVet  = errors.New("vet does not resolve to a vet user")
	ErrInvalidUser = errors.New("user not found")
)

// Store is the persistence boundary for appointment booking. GetVet resolves
// only users holding the vet role.
type Store interface {
	GetVet(id uint) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	CreateAppointment(a *models.Appointment) error
}
