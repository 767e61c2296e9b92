package rag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plan covers lipitor"), 0o644))

	got, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "plan covers lipitor", got)
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadDocumentBadPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := LoadDocument(path)
	assert.Error(t, err)
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	empty := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(good, []byte("content"), 0o644))
	require.NoError(t, os.WriteFile(empty, []byte("   "), 0o644))

	docs := LoadDocuments([]string{good, empty, filepath.Join(dir, "missing.txt")})
	assert.Equal(t, []string{"content"}, docs)
}
