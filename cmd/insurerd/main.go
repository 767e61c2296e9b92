package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prescottcassy/insurance-assistant/internal/card"
	"github.com/prescottcassy/insurance-assistant/internal/common"
	"github.com/prescottcassy/insurance-assistant/internal/dataset"
	"github.com/prescottcassy/insurance-assistant/internal/drugs"
	"github.com/prescottcassy/insurance-assistant/internal/ocr"
	"github.com/prescottcassy/insurance-assistant/internal/providers"
	"github.com/prescottcassy/insurance-assistant/internal/rag"
	"github.com/prescottcassy/insurance-assistant/internal/router"
	"github.com/prescottcassy/insurance-assistant/internal/server"
)

// insurerd is the headless daemon: load config, wire collaborators, serve.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var table *dataset.Table
	if cfg.Dataset.Path != "" {
		t, err := dataset.LoadFile(cfg.Dataset.Path)
		if err != nil {
			logger.Error("dataset.load_failed", "path", cfg.Dataset.Path, "error", err)
			os.Exit(1)
		}
		table = t
		logger.Info("dataset.loaded", "path", cfg.Dataset.Path, "rows", t.Len())
	}

	dir := providers.Bootstrap(ctx, cfg.Providers.SourceURL, cfg.Providers.FetchTimeout, logger)
	defer func() {
		_ = dir.Close()
	}()

	drugClient := drugs.NewClient(cfg.Drugs.BaseURL, cfg.Drugs.Limit, cfg.Drugs.Timeout, logger)

	var answerer router.DocumentAnswerer
	if client, err := rag.NewOllamaClient(cfg.RAG.OllamaHost, cfg.RAG.Model, cfg.RAG.EmbeddingModel); err == nil {
		chunker := rag.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
		answerer = rag.NewAnswerer(client, client, chunker, cfg.RAG.TopK, cfg.RAG.Timeout, logger)
	} else {
		logger.Warn("rag.client_unavailable", "error", err)
	}

	rt := router.New(dir, drugClient, answerer, logger)

	var docs []string
	if len(cfg.RAG.DocPaths) > 0 {
		docs = rag.LoadDocuments(cfg.RAG.DocPaths)
		logger.Info("documents.loaded", "count", len(docs))
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	cardSvc := card.NewService(extractor, logger)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           server.New(cardSvc, rt, drugClient, table, docs, cfg.Server.AllowedOrigins, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http.serve_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http.shutdown_failed", "error", err)
	}
}
