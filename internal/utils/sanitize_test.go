package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "John Smith", "John Smith"},
		{"angle brackets stripped", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript protocol stripped", "javascript:alert(1)", "alert(1)"},
		{"javascript protocol case-insensitive", "JavaScript:alert(1)", "alert(1)"},
		{"event handler stripped", "img onerror=evil()", "img evil()"},
		{"whitespace trimmed", "  Jane  ", "Jane"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestStripPhoneSeparators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(555) 123-4567", "5551234567"},
		{"+1 555 123 4567", "+15551234567"},
		{"5551234567", "5551234567"},
		{"555\t123", "555123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StripPhoneSeparators(tt.input))
	}
}
