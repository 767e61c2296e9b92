package rag

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// OllamaClient talks to a local Ollama instance for both embeddings and
// answer generation.
type OllamaClient struct {
	client         *api.Client
	model          string
	embeddingModel string
}

func NewOllamaClient(host, model, embeddingModel string) (*OllamaClient, error) {
	hostURL := envconfig.Host()
	if host != "" {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("parse ollama host: %w", err)
		}
		hostURL = u
	}
	if model == "" {
		model = "phi3-mini"
	}
	if embeddingModel == "" {
		embeddingModel = model
	}
	return &OllamaClient{
		client:         api.NewClient(hostURL, http.DefaultClient),
		model:          model,
		embeddingModel: embeddingModel,
	}, nil
}

// Embed returns the embedding vector for a text.
func (o *OllamaClient) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := o.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  o.embeddingModel,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	return resp.Embedding, nil
}

// Generate produces a completion for the prompt.
func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Options: map[string]any{
			"temperature": 0.1,
			"num_predict": 512,
		},
	}

	var b strings.Builder
	err := o.client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, werr := b.WriteString(resp.Response)
		return werr
	})
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}
