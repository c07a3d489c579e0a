package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	gorm.Model
	UserID         uint              `json:"user_id"`
	User           User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	VetID          uint              `json:"vet_id"`
	Vet            User              `json:"vet,omitempty" gorm:"foreignKey:VetID"`
	Date           time.Time         `json:"date"`
	TimeSlot       string            `json:"time_slot"` // e.g. "10:00 AM - 11:00 AM"
	Status         AppointmentStatus `json:"status"`
	Reason         string            `json:"reason"`
	Notes          string            `json:"notes,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	ConfirmedAt    *time.Time        `json:"confirmed_at,omitempty"`
	RejectedReason string            `json:"rejected_reason,omitempty"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// IsVetStatus reports whether s is one of the statuses a vet may set
// through the status-update endpoint.
func IsVetStatus(s AppointmentStatus) bool {
	return s == StatusConfirmed || s == StatusRejected || s == StatusCompleted
}

// CanTransitionTo validates a status change against the appointment
// state machine: pending -> {confirmed, rejected, cancelled},
// confirmed -> {completed, cancelled}; everything else is terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if next != StatusConfirmed && next != StatusRejected && next != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", next)
		}
	case StatusConfirmed:
		if next != StatusCompleted && next != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", next)
		}
	case StatusRejected, StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// ApplyStatus performs a validated transition and stamps the
// status-dependent fields.
func (a *Appointment) ApplyStatus(next AppointmentStatus, notes, rejectedReason string) error {
	if err := a.CanTransitionTo(next); err != nil {
		return err
	}

	a.Status = next
	if notes != "" {
		a.Notes = notes
	}

	switch next {
	case StatusConfirmed:
		now := time.Now()
		a.ConfirmedAt = &now
	case StatusRejected:
		if rejectedReason != "" {
			a.RejectedReason = rejectedReason
		}
	}
	return nil
}
