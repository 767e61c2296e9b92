// Package rag implements the last-resort document Q&A collaborator:
// chunking, embedding, in-memory retrieval, and answer generation.
package rag

import "strings"

// Chunker splits documents into overlapping chunks sized for embedding.
type Chunker struct {
	Size    int // target chunk size in characters, default 300
	Overlap int // characters carried over between chunks, default 30
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 300
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Chunk splits text, preferring paragraph then line then word boundaries
// before falling back to a hard cut.
func (c *Chunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.Size {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= c.Size {
			chunks = append(chunks, text)
			break
		}
		cut := c.findCut(text)
		chunks = append(chunks, strings.TrimSpace(text[:cut]))

		next := cut - c.Overlap
		if next <= 0 {
			next = cut
		}
		text = strings.TrimLeft(text[next:], " \n")
	}

	out := chunks[:0]
	for _, ch := range chunks {
		if ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

// findCut picks the best split point at or before Size.
func (c *Chunker) findCut(text string) int {
	window := text[:c.Size]
	for _, sep := range []string{"\n\n", "\n", " "} {
		if i := strings.LastIndex(window, sep); i > c.Size/2 {
			return i + len(sep)
		}
	}
	return c.Size
}

// ChunkAll chunks every document and flattens the result.
func (c *Chunker) ChunkAll(docs []string) []string {
	var out []string
	for _, d := range docs {
		out = append(out, c.Chunk(d)...)
	}
	return out
}
