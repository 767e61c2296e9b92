package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prescottcassy/insurance-assistant/internal/common"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/drugs"
	"github.com/prescottcassy/insurance-assistant/internal/providers"
	"github.com/prescottcassy/insurance-assistant/internal/rag"
	"github.com/prescottcassy/insurance-assistant/internal/router"
)

func newAskCmd(logger *slog.Logger) *cobra.Command {
	var cardPath string
	var docPaths []string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Route a free-text question to the matching lookup handler",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			query := strings.Join(args, " ")

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			qc := router.Context{}
			if cardPath != "" {
				res, err := newCardService(cfg, logger).AnalyzeCard(ctx, cardPath)
				if err != nil {
					return fmt.Errorf("analyze card: %w", err)
				}
				qc.CardFields = res.Fields
			}
			if cfg.Dataset.Path != "" {
				t, err := dataset.LoadFile(cfg.Dataset.Path)
				if err != nil {
					return fmt.Errorf("load plan dataset: %w", err)
				}
				qc.Dataset = t
			}
			if len(docPaths) > 0 {
				qc.Documents = rag.LoadDocuments(docPaths)
			}

			// provider lookups are opt-in for one-shot questions; without a
			// source URL the provider rule simply never matches
			var searcher router.ProviderSearcher
			if cfg.Providers.SourceURL != "" {
				dir := providers.Bootstrap(ctx, cfg.Providers.SourceURL, cfg.Providers.FetchTimeout, logger)
				defer func() {
					_ = dir.Close()
				}()
				searcher = dir
			}

			rt := router.New(
				searcher,
				drugs.NewClient(cfg.Drugs.BaseURL, cfg.Drugs.Limit, cfg.Drugs.Timeout, logger),
				newAnswerer(cfg, logger),
				logger,
			)

			resp := rt.Route(ctx, query, qc)
			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&cardPath, "card", "", "card image/PDF to extract fields from before routing")
	cmd.Flags().StringSliceVar(&docPaths, "docs", nil, "reference documents for the retrieval fallback")
	return cmd
}

// newAnswerer wires the ollama-backed retrieval fallback; a bad host
// configuration just disables the fallback rather than failing the command.
func newAnswerer(cfg *common.Config, logger *slog.Logger) router.DocumentAnswerer {
	client, err := rag.NewOllamaClient(cfg.RAG.OllamaHost, cfg.RAG.Model, cfg.RAG.EmbeddingModel)
	if err != nil {
		logger.Warn("rag.client_unavailable", "error", err)
		return nil
	}
	chunker := rag.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	return rag.NewAnswerer(client, client, chunker, cfg.RAG.TopK, cfg.RAG.Timeout, logger)
}
