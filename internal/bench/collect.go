package bench

import (
	"context"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/stats"
)

// #region collect

// Collect runs every prompt against every healthy server and records one
// TestResult per attempt. Unhealthy servers are skipped, not failed. Health
// probes use the configured request timeout, so BENCH_TIMEOUT governs them
// too.
func (c *Client) Collect(ctx context.Context, servers []Server, prompts []string) []TestResult {
	var results []TestResult

	for _, server := range servers {
		if !c.CheckHealth(ctx, server, c.config.Timeout) {
			continue
		}

		for _, prompt := range prompts {
			infer, latency, err := c.Infer(ctx, server, prompt)
			result := TestResult{
				Server:    server.Name,
				Port:      server.Port,
				Prompt:    prompt,
				LatencyMs: latency,
				Timestamp: time.Now().UTC(),
			}
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Success = true
				result.Tokens = infer.Tokens
				result.TokensPerSecond = infer.TokensPerSecond
				result.GPUMemoryUsed = infer.GPUMemoryUsed
				result.GPULoad = infer.GPULoad
			}
			results = append(results, result)

			if c.config.Pause > 0 {
				select {
				case <-ctx.Done():
					return results
				case <-time.After(c.config.Pause):
				}
			}
		}
	}
	return results
}

// #endregion collect

// #region summarize

// Summarize aggregates successful results per server.
func Summarize(results []TestResult) map[string]ServerStats {
	latencies := map[string][]float64{}
	tps := map[string][]float64{}

	for _, r := range results {
		if !r.Success {
			continue
		}
		latencies[r.Server] = append(latencies[r.Server], r.LatencyMs)
		tps[r.Server] = append(tps[r.Server], r.TokensPerSecond)
	}

	out := make(map[string]ServerStats, len(latencies))
	for server, lats := range latencies {
		out[server] = ServerStats{
			Count:         len(lats),
			MeanLatencyMs: stats.Mean(lats),
			MeanTPS:       stats.Mean(tps[server]),
			P50LatencyMs:  stats.Percentile(lats, 0.50),
			P95LatencyMs:  stats.Percentile(lats, 0.95),
			P99LatencyMs:  stats.Percentile(lats, 0.99),
		}
	}
	return out
}

// #endregion summarize
