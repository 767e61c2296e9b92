package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Answerer is the document Q&A collaborator: chunk, embed, retrieve, answer.
type Answerer struct {
	Embedder Embedder
	LLM      Generator
	Chunker  *Chunker
	TopK     int
	Timeout  time.Duration
	Logger   *slog.Logger
}

func NewAnswerer(emb Embedder, llm Generator, chunker *Chunker, topK int, timeout time.Duration, logger *slog.Logger) *Answerer {
	if logger == nil {
		logger = slog.Default()
	}
	if chunker == nil {
		chunker = NewChunker(0, 0)
	}
	if topK <= 0 {
		topK = 3
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Answerer{
		Embedder: emb,
		LLM:      llm,
		Chunker:  chunker,
		TopK:     topK,
		Timeout:  timeout,
		Logger:   logger,
	}
}

// Answer builds a retrieval index over docs and asks the model. The index is
// rebuilt per call; contexts are never merged across calls.
func (a *Answerer) Answer(ctx context.Context, query string, docs []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	start := time.Now()
	chunks := a.Chunker.ChunkAll(docs)
	if len(chunks) == 0 {
		return "", fmt.Errorf("no document content to index")
	}

	idx, err := BuildIndex(ctx, a.Embedder, chunks)
	if err != nil {
		return "", fmt.Errorf("build index: %w", err)
	}
	contexts, err := idx.TopK(ctx, a.Embedder, query, a.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}

	answer, err := a.LLM.Generate(ctx, buildPrompt(query, contexts))
	if err != nil {
		return "", err
	}

	a.Logger.Info("rag.answer.ok",
		"chunks", len(chunks),
		"contexts", len(contexts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return answer, nil
}

func buildPrompt(query string, contexts []string) string {
	var b strings.Builder
	b.WriteString("You are an insurance assistant. Answer the question using only the provided reference material. ")
	b.WriteString("If the answer is not in the references, say you don't have enough information.\n\n")
	b.WriteString("References:\n")
	for i, c := range contexts {
		b.WriteString(fmt.Sprintf("Reference %d:\n", i+1))
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	b.WriteString("Question: " + query + "\n\n")
	b.WriteString("Answer: ")
	return b.String()
}
