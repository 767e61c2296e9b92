package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunkerDefaults(t *testing.T) {
	c := NewChunker(0, 0)
	assert.Equal(t, 300, c.Size)
	assert.Equal(t, 0, c.Overlap)

	c = NewChunker(0, -1)
	assert.Equal(t, 30, c.Overlap)

	// overlap may never reach the chunk size
	c = NewChunker(100, 100)
	assert.Equal(t, 10, c.Overlap)
}

func TestChunkShortText(t *testing.T) {
	c := NewChunker(300, 30)
	assert.Equal(t, []string{"hello world"}, c.Chunk("  hello world  "))
}

func TestChunkEmpty(t *testing.T) {
	c := NewChunker(300, 30)
	assert.Nil(t, c.Chunk("   "))
}

func TestChunkLongText(t *testing.T) {
	c := NewChunker(100, 10)
	text := strings.TrimSpace(strings.Repeat("copay deductible benefits ", 40))

	chunks := c.Chunk(text)
	require.Greater(t, len(chunks), 3)
	for i, ch := range chunks {
		assert.NotEmpty(t, ch, i)
		assert.LessOrEqual(t, len(ch), c.Size, i)
		assert.False(t, strings.HasPrefix(ch, " "), i)
		assert.False(t, strings.HasSuffix(ch, " "), i)
	}
}

func TestChunkPrefersParagraphBreak(t *testing.T) {
	c := NewChunker(100, 0)
	para1 := strings.Repeat("a ", 40) // 80 chars
	text := strings.TrimSpace(para1) + "\n\n" + strings.Repeat("b ", 40)

	chunks := c.Chunk(text)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, strings.TrimSpace(para1), chunks[0])
}

func TestChunkAll(t *testing.T) {
	c := NewChunker(300, 30)
	chunks := c.ChunkAll([]string{"doc one", "", "doc two"})
	assert.Equal(t, []string{"doc one", "doc two"}, chunks)
}
