package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/prescottcassy/insurance-assistant/internal/card"
	"github.com/prescottcassy/insurance-assistant/internal/common"
	"github.com/prescottcassy/insurance-assistant/internal/ocr"
)

func newExtractCmd(logger *slog.Logger) *cobra.Command {
	var showSummary bool

	cmd := &cobra.Command{
		Use:   "extract <card-file>",
		Short: "OCR a card image or PDF and print the extracted fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.LoadConfig()
			svc := newCardService(cfg, logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			result, err := svc.AnalyzeCard(ctx, args[0])
			if err != nil {
				return err
			}

			if showSummary {
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
				return nil
			}
			out, err := json.MarshalIndent(result.Fields, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSummary, "summary", false, "print the formatted summary instead of raw fields")
	return cmd
}

func newCardService(cfg *common.Config, logger *slog.Logger) *card.Service {
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	return card.NewService(extractor, logger)
}
