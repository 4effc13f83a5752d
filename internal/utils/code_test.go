package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateConfirmationCode()
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
		seen[code] = true
	}
	// Not a uniqueness guarantee, but 50 identical draws would mean the
	// randomness is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateBookingID(t *testing.T) {
	id := GenerateBookingID()
	assert.Regexp(t, `^BK\d{6}$`, id)
}
