package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Index is an in-memory vector index over text chunks. Built per query
// context; nothing is persisted.
type Index struct {
	chunks  []string
	vectors [][]float64
}

// BuildIndex embeds every chunk.
func BuildIndex(ctx context.Context, emb Embedder, chunks []string) (*Index, error) {
	idx := &Index{}
	for _, ch := range chunks {
		v, err := emb.Embed(ctx, ch)
		if err != nil {
			return nil, fmt.Errorf("embed chunk: %w", err)
		}
		idx.chunks = append(idx.chunks, ch)
		idx.vectors = append(idx.vectors, v)
	}
	return idx, nil
}

// TopK returns the k chunks most similar to the query by cosine similarity.
func (idx *Index) TopK(ctx context.Context, emb Embedder, query string, k int) ([]string, error) {
	if len(idx.chunks) == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = 3
	}

	qv, err := emb.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		chunk string
		score float64
	}
	hits := make([]scored, 0, len(idx.chunks))
	for i, v := range idx.vectors {
		hits = append(hits, scored{idx.chunks[i], cosine(qv, v)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if k > len(hits) {
		k = len(hits)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = hits[i].chunk
	}
	return out, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
