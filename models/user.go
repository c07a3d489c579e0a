package models

import (
	"time"
)

type UserRole string

const (
	RoleUser UserRole = "user"
	RoleVet  UserRole = "vet"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique"`
	Email        string    `json:"email" gorm:"unique"`
	Password     string    `json:"password,omitempty"`
	Role         UserRole  `json:"role" gorm:"default:user"`
	Verified     bool      `json:"verified"`
	OTP          string    `json:"otp,omitempty"`
	OTPExpiresAt time.Time `json:"otp_expires_at,omitempty"`

	// Vet profile fields, meaningful only when Role == RoleVet
	Specialization string `json:"specialization,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Area           string `json:"area,omitempty"`
	Availability   string `json:"availability,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`
	ProfileImage   string `json:"profile_image,omitempty"`

	Appointments    []Appointment      `json:"appointments,omitempty" gorm:"foreignKey:UserID"`
	VetAppointments []Appointment      `json:"vet_appointments,omitempty" gorm:"foreignKey:VetID"`
	Diagnoses       []DiagnosisHistory `json:"diagnoses,omitempty" gorm:"foreignKey:UserID"`
	Conversations   []ChatConversation `json:"conversations,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitize strips credential fields before the user is written to a response.
func (u *User) Sanitize() {
	u.Password = ""
	u.OTP = ""
	u.OTPExpiresAt = time.Time{}
}
