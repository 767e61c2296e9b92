package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	base := NewAppError("OCR_FAILED", "tesseract exited", ErrImageDecode)

	assert.Equal(t, "OCR_FAILED: tesseract exited: image decode failed", base.Error())
	assert.True(t, errors.Is(base, ErrImageDecode))

	bare := NewAppError("NOT_FOUND", "no such plan", nil)
	assert.Equal(t, "NOT_FOUND: no such plan", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))

	wrapped := WrapError(ErrInvalidInput, "parsing query")
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.Equal(t, "parsing query: invalid input", wrapped.Error())
}
