package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/prescottcassy/insurance-assistant/internal/common"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/drugs"
	"github.com/prescottcassy/insurance-assistant/internal/providers"
	"github.com/prescottcassy/insurance-assistant/internal/rag"
	"github.com/prescottcassy/insurance-assistant/internal/router"
	"github.com/prescottcassy/insurance-assistant/internal/server"
)

func newServeCmd(logger *slog.Logger) *cobra.Command {
	var docPaths []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := common.LoadConfig()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var table *dataset.Table
			if cfg.Dataset.Path != "" {
				t, err := dataset.LoadFile(cfg.Dataset.Path)
				if err != nil {
					return err
				}
				table = t
				logger.Info("dataset.loaded", "path", cfg.Dataset.Path, "rows", t.Len())
			}

			// fetched once; a failure leaves provider lookups empty
			dir := providers.Bootstrap(ctx, cfg.Providers.SourceURL, cfg.Providers.FetchTimeout, logger)
			defer func() {
				_ = dir.Close()
			}()

			drugClient := drugs.NewClient(cfg.Drugs.BaseURL, cfg.Drugs.Limit, cfg.Drugs.Timeout, logger)
			rt := router.New(dir, drugClient, newAnswerer(cfg, logger), logger)

			paths := docPaths
			if len(paths) == 0 {
				paths = cfg.RAG.DocPaths
			}
			var docs []string
			if len(paths) > 0 {
				docs = rag.LoadDocuments(paths)
				logger.Info("documents.loaded", "count", len(docs))
			}

			srv := &http.Server{
				Addr: cfg.Server.HTTPAddr,
				Handler: server.New(
					newCardService(cfg, logger),
					rt,
					drugClient,
					table,
					docs,
					cfg.Server.AllowedOrigins,
					logger,
				).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http.serving", "addr", cfg.Server.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringSliceVar(&docPaths, "docs", nil, "reference documents for the retrieval fallback")
	return cmd
}
