package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@a.com"))
	assert.True(t, IsValidEmail("owner+pets@example.co.uk"))

	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@domain"))
	assert.False(t, IsValidEmail("spaces in@address.com"))
	assert.False(t, IsValidEmail("@no-local.com"))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdef1!"))
	assert.True(t, IsStrongPassword("Sup3r$ecret"))

	assert.False(t, IsStrongPassword("Ab1!"), "too short")
	assert.False(t, IsStrongPassword("abcdef1!"), "no upper case")
	assert.False(t, IsStrongPassword("ABCDEF1!"), "no lower case")
	assert.False(t, IsStrongPassword("Abcdefg!"), "no digit")
	assert.False(t, IsStrongPassword("Abcdefg1"), "no symbol")
}
