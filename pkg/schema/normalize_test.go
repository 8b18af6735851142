package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"100", "100"},
		{"100.0", "100"},
		{"100.0.0", "100.0"},
		{"10.00", "10.0"},
		{"  42  ", "42"},
		{"12 34 5", "12345"},
		{"\u200b777\u200b", "777"},
		{"", ""},
		{"   ", ""},
		{".0", ""},
		{"A-100", "A-100"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.raw))
		})
	}
}

func TestIsPresentToken(t *testing.T) {
	present := []string{"X", "y", "Yes", "TRUE", "1", "On Premise", "on-premise", "ON_PREMISE", "  on   premise ", "Present", "yellow", "GREEN"}
	for _, tok := range present {
		assert.True(t, IsPresentToken(tok), tok)
	}

	absent := []string{"", "NO", "N", "0", "FALSE", "OFF PREMISE", "RED", "ONPREMISE", "1.0"}
	for _, tok := range absent {
		assert.False(t, IsPresentToken(tok), tok)
	}
}

func TestIsApprovedStatus(t *testing.T) {
	for _, st := range []string{"APPROVED", "completed", "Accepted", "Auto-Approved", "approval granted", "ACCEPT"} {
		assert.True(t, IsApprovedStatus(st), st)
	}
	for _, st := range []string{"", "PENDING", "REJECTED", "CANCELLED", "Denied"} {
		assert.False(t, IsApprovedStatus(st), st)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ann Lee", DisplayName("Ann", "Lee"))
	assert.Equal(t, "Ann", DisplayName("Ann", ""))
	assert.Equal(t, "Lee", DisplayName("", " Lee "))
	assert.Equal(t, "", DisplayName("", ""))
	assert.Equal(t, "Mary Ann Lee", DisplayName("Mary  Ann", "Lee"))
	assert.Equal(t, "José Ruiz", DisplayName("José", "Ruiz"))
}
