package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/bench"
	"github.com/danielpatrickdp/superego-harness/internal/report"
)

// #region prompts
// defaultPrompts is the reference probe set for server testing.
var defaultPrompts = []string{
	"What is cognition?",
	"How does memory work?",
	"Explain analogical reasoning.",
	"What is a neural network?",
	"Explain machine learning.",
}
// #endregion prompts

// #region main

func main() {
	outDir := flag.String("out", "benchmark/reports", "output directory for CSV and report")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(outDir string) error {
	config := bench.DefaultConfig()
	client := bench.NewClient(config)
	servers := bench.DefaultServers()
	ctx := context.Background()

	fmt.Println("Checking server status...")
	healthy := 0
	for _, server := range servers {
		if client.CheckHealth(ctx, server, config.Timeout) {
			fmt.Printf("[OK]   %s (port %d)\n", server.Name, server.Port)
			healthy++
		} else {
			fmt.Printf("[SKIP] %s (port %d) not running\n", server.Name, server.Port)
		}
	}
	if healthy == 0 {
		return fmt.Errorf("no servers running; start them first")
	}

	fmt.Printf("\nCollecting test data (%d prompts per server)...\n", len(defaultPrompts))
	results := client.Collect(ctx, servers, defaultPrompts)
	for _, r := range results {
		if r.Success {
			fmt.Printf("  %s: %.0fms, %.1f TPS\n", r.Server, r.LatencyMs, r.TokensPerSecond)
		} else {
			fmt.Printf("  %s: FAILED (%s)\n", r.Server, r.Error)
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	csvPath := filepath.Join(outDir, fmt.Sprintf("server_tests_%s.csv", stamp))
	if err := writeFile(csvPath, func(f *os.File) error {
		return report.WriteBenchmarkCSV(f, results)
	}); err != nil {
		return err
	}
	fmt.Printf("\nCSV: %s\n", csvPath)

	reportPath := filepath.Join(outDir, fmt.Sprintf("comprehensive_report_%s.md", stamp))
	if err := writeFile(reportPath, func(f *os.File) error {
		return report.WriteBenchmarkMarkdown(f, results)
	}); err != nil {
		return err
	}
	fmt.Printf("Report: %s\n", reportPath)
	return nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

// #endregion run
