package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVetStatus(t *testing.T) {
	assert.True(t, IsVetStatus(StatusConfirmed))
	assert.True(t, IsVetStatus(StatusRejected))
	assert.True(t, IsVetStatus(StatusCompleted))
	assert.False(t, IsVetStatus(StatusPending))
	assert.False(t, IsVetStatus(StatusCancelled))
	assert.False(t, IsVetStatus("archived"))
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to rejected", StatusConfirmed, StatusRejected, false},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"rejected is terminal", StatusRejected, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Appointment{Status: tt.from}
			err := a.CanTransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestApplyStatusConfirmedStampsConfirmedAt(t *testing.T) {
	a := Appointment{Status: StatusPending}
	require.NoError(t, a.ApplyStatus(StatusConfirmed, "bring vaccination records", ""))

	assert.Equal(t, StatusConfirmed, a.Status)
	assert.Equal(t, "bring vaccination records", a.Notes)
	require.NotNil(t, a.ConfirmedAt)
	assert.False(t, a.ConfirmedAt.IsZero())
}

func TestApplyStatusRejectedStoresReason(t *testing.T) {
	a := Appointment{Status: StatusPending}
	require.NoError(t, a.ApplyStatus(StatusRejected, "", "not available that day"))

	assert.Equal(t, StatusRejected, a.Status)
	assert.Equal(t, "not available that day", a.RejectedReason)
	assert.Nil(t, a.ConfirmedAt)
}

func TestApplyStatusIllegalTransitionLeavesAppointmentUnchanged(t *testing.T) {
	a := Appointment{Status: StatusCompleted, Notes: "original"}
	err := a.ApplyStatus(StatusConfirmed, "new notes", "")

	require.Error(t, err)
	assert.Equal(t, StatusCompleted, a.Status)
	assert.Equal(t, "original", a.Notes)
}

func TestBeforeCreateDefaultsStatus(t *testing.T) {
	a := Appointment{}
	require.NoError(t, a.BeforeCreate(nil))
	assert.Equal(t, StatusPending, a.Status)

	b := Appointment{Status: StatusConfirmed}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, StatusConfirmed, b.Status)
}
