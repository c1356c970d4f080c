// Package nbacdn fetches and normalizes NBA scoreboards and box scores from
// the two public endpoint families: the live CDN (recent seasons) and the
// legacy data host (historical seasons).
//
// Transport failures never escape this package as errors. A fetch either
// yields a decoded document or reports absence, and the candidate ordering in
// Resolver is the only recovery mechanism.
package nbacdn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// UseNumber keeps ids and scores exactly as sent instead of float64.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Client is the shared HTTP client for both endpoint families.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a client with the given request timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Fetch GETs url and decodes a JSON object. ok is false on any network
// error, non-200 status or undecodable body; the cause is logged.
func (c *Client) Fetch(ctx context.Context, url string) (map[string]interface{}, bool) {
	body, err := c.get(ctx, url)
	if err != nil {
		c.logger.Warn("fetch failed", "url", url, "error", err)
		return nil, false
	}
	return body, true
}

// Resolve tries candidates in order and returns the first document fetched.
// Remaining candidates are not requested. ok is false when none answered.
func (c *Client) Resolve(ctx context.Context, candidates []Candidate) (Document, bool) {
	for _, cand := range candidates {
		body, ok := c.Fetch(ctx, cand.URL)
		if !ok {
			continue
		}
		return Document{Source: cand.Source, URL: cand.URL, Body: body}, true
	}
	return Document{}, false
}

func (c *Client) get(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, snippet)
	}

	var result map[string]interface{}
	if err := jsonAPI.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("decode response: empty document")
	}
	return result, nil
}

// Decode parses a raw JSON object the same way fetched documents are parsed.
func Decode(data []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := jsonAPI.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
