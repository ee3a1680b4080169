package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/superego-harness/internal/analysis"
	"github.com/danielpatrickdp/superego-harness/internal/results"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to results DB")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/results.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	store, err := results.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *runID != "" {
		err = runDetailMode(store, *runID, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID          string  `json:"run_id"`
	Question       string  `json:"question"`
	Seed           int64   `json:"seed"`
	Trials         int     `json:"trials"`
	FinalKarma     float64 `json:"final_karma"`
	FinalErrorRate float64 `json:"final_error_rate"`
	CreatedAt      string  `json:"created_at"`
}

func runListMode(store *results.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}

	rows := make([]listRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, listRow{
			RunID:          r.RunID,
			Question:       fmt.Sprintf("%d+%d", r.QuestionA, r.QuestionB),
			Seed:           r.Seed,
			Trials:         r.NumTrials,
			FinalKarma:     r.FinalKarma,
			FinalErrorRate: r.FinalErrorRate,
			CreatedAt:      r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	fmt.Printf("%-36s  %-8s  %-6s  %-11s  %-10s  %s\n",
		"RUN", "QUESTION", "TRIALS", "FINAL KARMA", "ERROR RATE", "CREATED")
	for _, row := range rows {
		fmt.Printf("%-36s  %-8s  %-6d  %-11.2f  %-10.2f  %s\n",
			row.RunID, row.Question, row.Trials, row.FinalKarma, row.FinalErrorRate, row.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOut struct {
	Run     listRow          `json:"run"`
	Summary analysis.Summary `json:"summary"`
}

func runDetailMode(store *results.Store, runID string, jsonOut bool) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	history, err := store.GetHistory(runID)
	if err != nil {
		return err
	}
	summary := analysis.Analyze(history)

	if jsonOut {
		out := detailOut{
			Run: listRow{
				RunID:          run.RunID,
				Question:       fmt.Sprintf("%d+%d", run.QuestionA, run.QuestionB),
				Seed:           run.Seed,
				Trials:         run.NumTrials,
				FinalKarma:     run.FinalKarma,
				FinalErrorRate: run.FinalErrorRate,
				CreatedAt:      run.CreatedAt.Format("2006-01-02 15:04:05"),
			},
			Summary: summary,
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Printf("run %s\n", run.RunID)
	fmt.Printf("question: %d+%d | seed: %d | trials: %d\n", run.QuestionA, run.QuestionB, run.Seed, run.NumTrials)
	fmt.Printf("final karma: %.2f | final error rate: %.2f%%\n", run.FinalKarma, run.FinalErrorRate*100)
	fmt.Println()
	fmt.Printf("%-10s  %-6s  %-8s  %-10s  %s\n", "ITERATION", "ANSWER", "CORRECT", "KARMA", "ERROR RATE")
	for _, rec := range history {
		if rec.Iteration == 1 || rec.Iteration%10 == 0 {
			fmt.Printf("%-10d  %-6d  %-8v  %-10.2f  %.2f%%\n",
				rec.Iteration, rec.Answer, rec.Correct, rec.Karma, rec.ErrorRate*100)
		}
	}
	fmt.Println()
	fmt.Printf("improvement (early vs late): %.2f%%\n", summary.ImprovementPct)
	return nil
}

// #endregion detail-mode
