package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/bench"
)

// #region benchmark-csv

// WriteBenchmarkCSV writes one row per server test result.
func WriteBenchmarkCSV(w io.Writer, results []bench.TestResult) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "server", "port", "prompt", "success",
		"latency", "tokens", "tokensPerSecond", "gpuMemoryUsed", "gpuLoad", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write benchmark csv header: %w", err)
	}
	for i, r := range results {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Server,
			strconv.Itoa(r.Port),
			r.Prompt,
			strconv.FormatBool(r.Success),
			strconv.FormatFloat(r.LatencyMs, 'f', 2, 64),
			strconv.Itoa(r.Tokens),
			strconv.FormatFloat(r.TokensPerSecond, 'f', 2, 64),
			strconv.FormatFloat(r.GPUMemoryUsed, 'f', 2, 64),
			strconv.FormatFloat(r.GPULoad, 'f', 2, 64),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write benchmark csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// #endregion benchmark-csv

// #region benchmark-markdown

// WriteBenchmarkMarkdown renders the server comparison report.
func WriteBenchmarkMarkdown(w io.Writer, results []bench.TestResult) error {
	fmt.Fprintf(w, "# Inference Server Benchmark Report\n\n")
	fmt.Fprintf(w, "**Generated**: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}
	fmt.Fprintf(w, "## Server Tests\n\n")
	fmt.Fprintf(w, "- Total tests: %d\n", len(results))
	fmt.Fprintf(w, "- Successful: %d\n", successful)
	if len(results) > 0 {
		fmt.Fprintf(w, "- Success rate: %.1f%%\n", float64(successful)/float64(len(results))*100)
	}
	fmt.Fprintf(w, "\n")

	stats := bench.Summarize(results)
	if len(stats) == 0 {
		fmt.Fprintf(w, "No successful tests to compare.\n")
		return nil
	}

	servers := make([]string, 0, len(stats))
	for s := range stats {
		servers = append(servers, s)
	}
	sort.Strings(servers)

	fmt.Fprintf(w, "## Server Comparison\n\n")
	fmt.Fprintf(w, "| Server | Tests | Mean Latency (ms) | Mean TPS | P50 (ms) | P95 (ms) | P99 (ms) |\n")
	fmt.Fprintf(w, "|--------|-------|-------------------|----------|----------|----------|----------|\n")
	for _, name := range servers {
		s := stats[name]
		fmt.Fprintf(w, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			name, s.Count, s.MeanLatencyMs, s.MeanTPS, s.P50LatencyMs, s.P95LatencyMs, s.P99LatencyMs)
	}
	return nil
}

// #endregion benchmark-markdown
