package uiutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFriendlyDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-14", "Mar 14, 2026"},
		{"2026-03-14T09:30:00Z", "Mar 14, 2026"},
		{"2026-03-14T09:30:00.123Z", "Mar 14, 2026"},
		{"next friday", "next friday"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFriendlyDate(tt.in))
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", Initials("jane doe"))
	assert.Equal(t, "JM", Initials("Jane Mary Doe"))
	assert.Equal(t, "É", Initials("élodie"))
	assert.Equal(t, "?", Initials("   "))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abc…", TruncateWithEllipsis("abcdefgh", 4))
	assert.Equal(t, "…", TruncateWithEllipsis("abcdefgh", 1))
}
