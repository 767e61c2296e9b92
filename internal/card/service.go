// Package card composes OCR text extraction, field extraction, and summary
// formatting into the card analysis service.
package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prescottcassy/insurance-assistant/internal/extract"
	"github.com/prescottcassy/insurance-assistant/internal/ocr"
	"github.com/prescottcassy/insurance-assistant/internal/summary"
)

// TextExtractor is stage 1: file -> raw OCR text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// Result is the public contract of the extraction service.
type Result struct {
	Fields     extract.FieldMap `json:"fields"`
	Summary    string           `json:"summary"`
	RawText    string           `json:"raw_text,omitempty"`
	Confidence float32          `json:"confidence"`
}

type Service struct {
	logger *slog.Logger
	ocr    TextExtractor
	schema map[string]any
}

func NewService(tx TextExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		ocr:    tx,
		schema: extract.BuildCardJSONSchema(),
	}
}

// AnalyzeCard runs OCR on the file at path and returns the extracted fields
// and summary. The only hard failure is an unreadable source; a card whose
// text yields no fields returns an empty map, not an error.
func (s *Service) AnalyzeCard(ctx context.Context, path string) (Result, error) {
	res, err := s.ocr.Extract(ctx, path)
	if err != nil {
		s.logger.Error("card.ocr.failed", "path", path, "error", err)
		return Result{}, fmt.Errorf("extract text: %w", err)
	}
	s.logger.Info("card.ocr.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
	)
	return s.AnalyzeText(res.Text, res.Confidence), nil
}

// AnalyzeText runs field extraction and summary formatting over already
// captured OCR text.
func (s *Service) AnalyzeText(text string, confidence float32) Result {
	fields := extract.Extract(text)
	cleaned := extract.Clean(fields)

	if err := extract.ValidateFields(s.schema, cleaned); err != nil {
		// extraction output is best-effort; a schema miss is diagnostic only
		s.logger.Warn("card.fields.schema_mismatch", "error", err)
	}

	s.logger.Info("card.fields.ok", "count", len(cleaned))
	return Result{
		Fields:     cleaned,
		Summary:    summary.Format(cleaned),
		RawText:    text,
		Confidence: confidence,
	}
}
