package rag

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadDocument reads a reference document for the retrieval fallback.
// PDFs are read through their text layer; anything else is treated as
// plain text.
func LoadDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(b), nil
}

func loadPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract plain text: %w", err)
	}
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}

// LoadDocuments loads every document under the given paths, skipping
// unreadable files.
func LoadDocuments(paths []string) []string {
	var docs []string
	for _, p := range paths {
		text, err := LoadDocument(p)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, text)
	}
	return docs
}
