package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "repeated warnings keep first position",
			input:    []string{"schedule follow-up", " online verification required ", "schedule follow-up"},
			expected: []string{"schedule follow-up", "online verification required"},
		},
		{
			name:     "blank entries dropped",
			input:    []string{"", "  ", "a"},
			expected: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "irish citizen", NormalizeKey("  Irish \t Citizen "))
	assert.Equal(t, "british", NormalizeKey("BRITISH"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "W12******", Mask("W12345678", 3))
	assert.Equal(t, "**", Mask("AB", 3))
	assert.Equal(t, "****", Mask("ABCD", -1))
	assert.Equal(t, "", Mask("", 3))
}
