package spectral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// #region client-struct
// OllamaClient wraps the Ollama embeddings HTTP API.
type OllamaClient struct {
	base string
	http *http.Client
}
// #endregion client-struct

// #region constructor
// NewOllamaClient creates a client for the given base URL, e.g.
// http://localhost:11434.
func NewOllamaClient(base string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}
// #endregion constructor

// #region reachable

// CheckReachable probes GET /api/tags and returns an error when Ollama does
// not answer with 200.
func (c *OllamaClient) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("build tags request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable at %s: %w", c.base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// #endregion reachable

// #region embeddings

type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingsResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embeddings returns the embedding vector for text under the given model.
func (c *OllamaClient) Embeddings(ctx context.Context, model, text string) ([]float64, error) {
	body, err := json.Marshal(embeddingsRequest{Model: model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embeddings rpc: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings: HTTP %d", resp.StatusCode)
	}

	var parsed embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("embeddings: empty embedding for model %s", model)
	}
	return parsed.Embedding, nil
}

// #endregion embeddings
