package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// HTTPClient calls an external recommendation service over HTTP JSON.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient returns a recommender client for the given endpoint.
// An empty baseURL yields a client whose Suggest always returns ErrNotConfigured.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type suggestRequest struct {
	UserID int64 `json:"userId"`
}

type suggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggest posts the user id to the recommendation service and returns its
// suggestions.
func (c *HTTPClient) Suggest(ctx context.Context, userID int64) ([]Suggestion, error) {
	if c.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	raw, err := json.Marshal(suggestRequest{UserID: userID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("recommend: request failed status=%d body=%s", resp.StatusCode, string(b))
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("recommend: decode response: %w", err)
	}
	return out.Suggestions, nil
}
