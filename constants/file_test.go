package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "png", NormalizeExt(".PNG"))
	assert.Equal(t, "pdf", NormalizeExt("pdf"))
	assert.Equal(t, "", NormalizeExt("."))
}

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".pdf", PDF},
		{"PDF", PDF},
		{".jpg", IMAGE},
		{"jpeg", IMAGE},
		{".png", IMAGE},
		{"tiff", IMAGE},
		{".bmp", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapExtToFormat(tt.ext), tt.ext)
	}
}
