package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/superego-harness/internal/replay"
	"github.com/danielpatrickdp/superego-harness/internal/results"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	dbPath := flag.String("db", "", "path to results DB (DB mode, with --run)")
	runID := flag.String("run", "", "run ID to re-verify from the results DB")
	flag.Parse()

	fixtureMode := *fixturePath != ""
	dbMode := *dbPath != "" && *runID != ""
	if fixtureMode == dbMode {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/results.db --run <run-id>")
		os.Exit(2)
	}

	var exitCode int
	if fixtureMode {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *runID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	fixture, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return verify(fixture)
}

// #endregion fixture-mode

// #region db-mode

// runDBMode rebuilds a fixture from a stored run and verifies that the run
// reproduces from its recorded seed.
func runDBMode(dbPath, runID string) int {
	store, err := results.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	run, err := store.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	config, err := run.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	history, err := store.GetHistory(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	fixture := replay.ExportFixture(config, run.Seed, history, 10)
	return verify(fixture)
}

// #endregion db-mode

// #region verify

func verify(fixture *replay.Fixture) int {
	if fixture.Description != "" {
		fmt.Printf("fixture: %s\n", fixture.Description)
	}

	checks, summary, err := replay.Replay(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	for _, c := range checks {
		if c.Pass {
			fmt.Printf("  [PASS] iteration %d\n", c.Iteration)
		} else {
			fmt.Printf("  [FAIL] iteration %d: %s\n", c.Iteration, c.Reason)
		}
	}

	fmt.Printf("checkpoints: %d/%d passed, final state ok: %v\n",
		summary.Passed, summary.Checkpoints, summary.FinalOK)
	if summary.Ok() {
		fmt.Println("replay verified")
		return 0
	}
	fmt.Println("replay mismatch")
	return 1
}

// #endregion verify
