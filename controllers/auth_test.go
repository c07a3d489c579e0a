package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vderm-x/vetcare-app/models"
)

func TestSignupInputIgnoresAccountStateFields(t *testing.T) {
	// A hostile signup body trying to smuggle in a pre-verified account.
	body := []byte(`{
		"id": 1,
		"username": "a",
		"email": "a@a.com",
		"password": "Abcdef1!",
		"verified": true,
		"otp": "000000",
		"otp_expires_at": "2099-01-01T00:00:00Z"
	}`)

	input := new(SignupInput)
	require.NoError(t, json.Unmarshal(body, input))
	user := input.toUser()

	assert.Equal(t, "a", user.Username)
	assert.Equal(t, "a@a.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	assert.Zero(t, user.ID)
	assert.False(t, user.Verified, "signup must start unverified on the OTP path")
	assert.Empty(t, user.OTP)
	assert.True(t, user.OTPExpiresAt.IsZero())
}

func TestSignupInputCarriesVetProfile(t *testing.T) {
	body := []byte(`{
		"username": "drvet",
		"email": "vet@clinic.com",
		"password": "Abcdef1!",
		"role": "vet",
		"specialization": "Cattle Specialist",
		"contact": "555-0101",
		"area": "North District",
		"availability": "Mon-Fri 9AM-5PM",
		"licenseNumber": "VET-1234"
	}`)

	input := new(SignupInput)
	require.NoError(t, json.Unmarshal(body, input))
	user := input.toUser()

	assert.Equal(t, models.RoleVet, user.Role)
	assert.Equal(t, "Cattle Specialist", user.Specialization)
	assert.Equal(t, "555-0101", user.Contact)
	assert.Equal(t, "North District", user.Area)
	assert.Equal(t, "Mon-Fri 9AM-5PM", user.Availability)
	assert.Equal(t, "VET-1234", user.LicenseNumber)
}
