package bench

import (
	"os"
	"strconv"
	"time"
)

// #region server

// Server identifies one inference server under test.
type Server struct {
	Name  string
	Port  int
	Model string
}

// DefaultServers returns the reference model ladder on localhost ports
// 8080-8083.
func DefaultServers() []Server {
	return []Server{
		{Name: "0.5B", Port: 8080, Model: "Qwen2.5-0.5B-Instruct-Q4_K_M.gguf"},
		{Name: "1.5B", Port: 8081, Model: "qwen2.5-1.5b-instruct-q4_k_m.gguf"},
		{Name: "3B", Port: 8082, Model: "Qwen2.5-3B-Instruct-Q4_K_M.gguf"},
		{Name: "14B", Port: 8083, Model: "qwen2.5-14b-instruct-q4_k_m.gguf"},
	}
}

// #endregion server

// #region config

// Config holds benchmark client parameters.
type Config struct {
	Host        string        // host the servers listen on
	Timeout     time.Duration // per-request timeout
	MaxTokens   int           // completion budget per prompt
	Temperature float64
	Pause       time.Duration // delay between prompts against one server
}

// DefaultConfig returns benchmark defaults. Reads from env vars:
// BENCH_HOST, BENCH_TIMEOUT, BENCH_MAX_TOKENS.
func DefaultConfig() Config {
	cfg := Config{
		Host:        "localhost",
		Timeout:     60 * time.Second,
		MaxTokens:   256,
		Temperature: 0.7,
		Pause:       500 * time.Millisecond,
	}
	if v := os.Getenv("BENCH_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("BENCH_TIMEOUT"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.Timeout = time.Duration(sec) * time.Second
		}
	}
	if v := os.Getenv("BENCH_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	return cfg
}

// #endregion config

// #region results

// InferResult holds the response body from one /infer call.
type InferResult struct {
	Tokens          int     `json:"tokens"`
	TokensPerSecond float64 `json:"tokensPerSecond"`
	Duration        float64 `json:"duration"`
	GPUMemoryUsed   float64 `json:"gpuMemoryUsed"`
	GPULoad         float64 `json:"gpuLoad"`
}

// TestResult is one prompt outcome against one server.
type TestResult struct {
	Server          string    `json:"server"`
	Port            int       `json:"port"`
	Prompt          string    `json:"prompt"`
	Success         bool      `json:"success"`
	LatencyMs       float64   `json:"latency"`
	Tokens          int       `json:"tokens"`
	TokensPerSecond float64   `json:"tokensPerSecond"`
	GPUMemoryUsed   float64   `json:"gpuMemoryUsed"`
	GPULoad         float64   `json:"gpuLoad"`
	Error           string    `json:"error,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// ServerStats aggregates successful results for one server.
type ServerStats struct {
	Count         int
	MeanLatencyMs float64
	MeanTPS       float64
	P50LatencyMs  float64
	P95LatencyMs  float64
	P99LatencyMs  float64
}

// #endregion results
