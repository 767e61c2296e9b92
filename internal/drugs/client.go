// Package drugs wraps the openFDA drugsfda endpoint. All failures degrade to
// an empty suggestion list; the collaborator is never allowed to surface an
// error to the router.
package drugs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.fda.gov"

type Client struct {
	baseURL string
	limit   int
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, limit int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if limit <= 0 {
		limit = 10
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// openFDA drugsfda response, trimmed to the fields we read.
type fdaResponse struct {
	Results []struct {
		Products []struct {
			BrandName string `json:"brand_name"`
		} `json:"products"`
	} `json:"results"`
}

// SuggestForSymptom queries openFDA for drugs whose active ingredient
// matches the symptom token and returns lowercase brand names. Network,
// status, and parse failures all yield an empty list.
func (c *Client) SuggestForSymptom(ctx context.Context, symptom string) []string {
	symptom = strings.TrimSpace(symptom)
	if symptom == "" {
		return nil
	}

	reqID := uuid.New().String()
	start := time.Now()

	q := url.Values{}
	q.Set("search", "products.active_ingredient:"+symptom)
	q.Set("limit", fmt.Sprintf("%d", c.limit))
	endpoint := c.baseURL + "/drug/drugsfda.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("drugs.http.build_request_error", "req_id", reqID, "error", err)
		return nil
	}

	c.logger.Info("drugs.http.request", "req_id", reqID, "symptom", symptom)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("drugs.http.send_error",
			"req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("drugs.http.response_body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("drugs.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil
	}

	var parsed fdaResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logger.Warn("drugs.http.decode_error", "req_id", reqID, "error", err)
		return nil
	}

	var brands []string
	for _, r := range parsed.Results {
		if len(r.Products) == 0 {
			continue
		}
		if name := strings.TrimSpace(r.Products[0].BrandName); name != "" {
			brands = append(brands, strings.ToLower(name))
		}
	}
	return brands
}
