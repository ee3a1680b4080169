package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// #region client-struct
// Client speaks the llama.cpp-style HTTP surface of the inference servers:
// GET /health for liveness, POST /infer for completions.
type Client struct {
	config Config
	http   *http.Client
}
// #endregion client-struct

// #region constructor
// NewClient creates a benchmark client.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
}
// #endregion constructor

// #region health

// CheckHealth reports whether a server answers GET /health with 200 within
// the given timeout.
func (c *Client) CheckHealth(ctx context.Context, server Server, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(server, "/health"), nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// #endregion health

// #region infer

type inferRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
}

// Infer sends one prompt and returns the parsed result plus wall-clock
// latency in milliseconds.
func (c *Client) Infer(ctx context.Context, server Server, prompt string) (InferResult, float64, error) {
	body, err := json.Marshal(inferRequest{
		Prompt:      prompt,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return InferResult{}, 0, fmt.Errorf("marshal infer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(server, "/infer"), bytes.NewReader(body))
	if err != nil {
		return InferResult{}, 0, fmt.Errorf("build infer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return InferResult{}, latency, fmt.Errorf("infer %s: %w", server.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return InferResult{}, latency, fmt.Errorf("infer %s: HTTP %d", server.Name, resp.StatusCode)
	}

	var result InferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return InferResult{}, latency, fmt.Errorf("decode infer response: %w", err)
	}
	return result, latency, nil
}

// #endregion infer

// #region helpers
func (c *Client) url(server Server, path string) string {
	return fmt.Sprintf("http://%s:%d%s", c.config.Host, server.Port, path)
}
// #endregion helpers
