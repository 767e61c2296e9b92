package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prescottcassy/insurance-assistant/internal/extract"
)

func TestFormatSingleSection(t *testing.T) {
	got := Format(extract.FieldMap{"copay": "25"})

	assert.Equal(t, "Prescription Drug Coverage\n- Copay: 25", got)
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", Format(extract.FieldMap{}))
}

func TestFormatHoistsName(t *testing.T) {
	got := Format(extract.FieldMap{
		"subscriber_name": "jane doe",
		"subscriber_id":   "ABC123456",
	})

	assert.Equal(t, "Member Information\nUser Name: Jane Doe\n- Subscriber Id: ABC123456", got)
}

func TestFormatSectionOrderAndOmission(t *testing.T) {
	got := Format(extract.FieldMap{
		"primary": "20",
		"copay":   "25",
	})

	benefits := strings.Index(got, "Coverage & Benefits")
	rx := strings.Index(got, "Prescription Drug Coverage")
	assert.GreaterOrEqual(t, benefits, 0)
	assert.Greater(t, rx, benefits)
	assert.NotContains(t, got, "Member Information")
	assert.NotContains(t, got, "Notes")
}

func TestFormatUnknownKeysTrail(t *testing.T) {
	got := Format(extract.FieldMap{
		"copay":     "25",
		"zz_custom": "some value",
	})

	lines := strings.Split(got, "\n")
	assert.Equal(t, "- Zz Custom: Some Value", lines[len(lines)-1])
}

func TestFormatPlainLineKeys(t *testing.T) {
	got := Format(extract.FieldMap{"responsibility": "you pay twenty"})

	assert.Equal(t, "Responsibility: You Pay Twenty", got)
}

func TestBeautify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jane doe", "Jane Doe"},
		{"$10/$30 generic", "$10/$30 Generic"},
		{"ABC123456", "ABC123456"},
		{"  spaced   out  ", "Spaced Out"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Beautify(tt.in), tt.in)
	}
}
