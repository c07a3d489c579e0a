package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vderm-x/vetcare-app/models"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	store.AddUser(models.User{ID: 1, Username: "owner", Role: models.RoleUser})
	store.AddUser(models.User{ID: 2, Username: "drvet", Role: models.RoleVet})
	return NewService(store), store
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, store := newTestService()

	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	appointment, err := svc.Book(1, 2, date, "10:00 AM - 11:00 AM", "skin lumps", "")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, uint(1), appointment.UserID)
	assert.Equal(t, uint(2), appointment.VetID)
	assert.Equal(t, "owner", appointment.User.Username)
	assert.Equal(t, "drvet", appointment.Vet.Username)

	require.Len(t, store.Appointments(), 1)
}

func TestBookRejectsNonVetWithoutPersisting(t *testing.T) {
	svc, store := newTestService()

	// ID 1 exists but holds the user role.
	_, err := svc.Book(1, 1, time.Now(), "10:00 AM - 11:00 AM", "checkup", "")
	assert.ErrorIs(t, err, ErrInvalidVet)
	assert.Empty(t, store.Appointments(), "a failed booking must not persist a record")

	// Unknown vet ID.
	_, err = svc.Book(1, 99, time.Now(), "10:00 AM - 11:00 AM", "checkup", "")
	assert.ErrorIs(t, err, ErrInvalidVet)
	assert.Empty(t, store.Appointments())
}

func TestBookRejectsUnknownUserWithoutPersisting(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Book(99, 2, time.Now(), "10:00 AM - 11:00 AM", "checkup", "")
	assert.ErrorIs(t, err, ErrInvalidUser)
	assert.Empty(t, store.Appointments())
}
