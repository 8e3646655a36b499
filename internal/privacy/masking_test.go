package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"international", "+51987654321", "+*******4321"},
		{"plus only", "+", "+"},
		{"short with plus", "+123", "+***"},
		{"plain number", "51987654321", "*******4321"},
		{"short plain", "123", "***"},
		{"exactly four", "1234", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskPhoneNumber(tt.input))
		})
	}
}

func TestMaskChatID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whatsapp chat", "51987654321@c.us", "*******4321@c.us"},
		{"short number part", "123@c.us", "***@c.us"},
		{"no domain", "51987654321", "*******4321"},
		{"short no domain", "123", "***"},
		{"group chat", "1234567890-1600000000@g.us", "*****************0000@g.us"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskChatID(tt.input))
		})
	}
}
