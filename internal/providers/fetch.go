package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prescottcassy/insurance-assistant/internal/dataset"
)

// Bootstrap fetches the CMS provider dataset and loads it into a directory.
// Any failure leaves the directory empty: provider lookups then return no
// results rather than erroring. Called once at process start.
func Bootstrap(ctx context.Context, url string, timeout time.Duration, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	if url == "" {
		logger.Info("providers.bootstrap.skipped", "reason", "no source url")
		return Empty(logger)
	}

	t, err := fetchCSV(ctx, url, timeout)
	if err != nil {
		logger.Warn("providers.bootstrap.fetch_failed", "url", url, "error", err)
		return Empty(logger)
	}

	dir, err := Load(ctx, t, logger)
	if err != nil {
		logger.Warn("providers.bootstrap.load_failed", "error", err)
		return Empty(logger)
	}
	return dir
}

func fetchCSV(ctx context.Context, url string, timeout time.Duration) (*dataset.Table, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}
	return dataset.ReadCSV(resp.Body)
}
