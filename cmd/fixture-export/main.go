package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/superego-harness/internal/replay"
	"github.com/danielpatrickdp/superego-harness/internal/results"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to results DB")
	runID := flag.String("run", "", "run ID to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	every := flag.Int("every", 10, "checkpoint interval in iterations")
	flag.Parse()

	if *dbPath == "" || *runID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/results.db --run <run-id> --out path/to/fixture.json [--every N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath, *every); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, runID, outPath string, every int) error {
	store, err := results.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	runRec, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	config, err := runRec.Config()
	if err != nil {
		return err
	}
	history, err := store.GetHistory(runID)
	if err != nil {
		return err
	}

	fixture := replay.ExportFixture(config, runRec.Seed, history, every)

	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", outPath, err)
	}

	fmt.Printf("exported %d checkpoints to %s\n", len(fixture.Checkpoints), outPath)
	return nil
}

// #endregion export
