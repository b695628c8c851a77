package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// HTTPClient calls an external summarization service over HTTP JSON.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient returns a summarizer client for the given endpoint.
// An empty baseURL yields a client whose Summarize always returns ErrNotConfigured.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type summarizeRequest struct {
	Path string `json:"path"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize posts the artifact path to the summarization service and returns
// the summary text. This is the one call in the system expected to take
// non-trivial wall-clock time; only the ingestion pipeline's background task
// ever blocks on it.
func (c *HTTPClient) Summarize(ctx context.Context, path string) (string, error) {
	if c.BaseURL == "" {
		return "", ErrNotConfigured
	}
	raw, err := json.Marshal(summarizeRequest{Path: path})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("summarize: request failed status=%d body=%s", resp.StatusCode, string(b))
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("summarize: decode response: %w", err)
	}
	if out.Summary == "" {
		return "", fmt.Errorf("summarize: service returned an empty summary")
	}
	return out.Summary, nil
}
