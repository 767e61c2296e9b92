package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prescottcassy/insurance-assistant/constants"
	"github.com/prescottcassy/insurance-assistant/internal/common"
)

// extractPDF rasterizes each page with pdftoppm and OCRs the pages.
// Cards arriving as PDFs are scans, so there is no text layer worth probing.
func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	tmpDir, err := os.MkdirTemp("", "ia-pp-*")
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF}, err
	}
	defer func(path string) {
		if rmErr := os.RemoveAll(path); rmErr != nil {
			e.logger.Warn("ocr.pdf.tmp_cleanup_failed", "path", path, "error", rmErr)
		}
	}(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF, Warnings: []string{string(errb)}},
			fmt.Errorf("%w: pdftoppm: %v", common.ErrImageDecode, err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return ExtractionResult{SourceType: constants.PDF, Warnings: []string{"pdftoppm produced no images"}},
			fmt.Errorf("%w: no pages rendered", common.ErrImageDecode)
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}

	txt := Normalize(b.String())
	return ExtractionResult{
		Text:       txt,
		Pages:      len(matches),
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
		Confidence: heuristicConfidence(txt),
	}, nil
}
