package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/superego-harness/internal/analysis"
	"github.com/danielpatrickdp/superego-harness/internal/experiment"
	"github.com/danielpatrickdp/superego-harness/internal/oracle"
	"github.com/danielpatrickdp/superego-harness/internal/report"
	"github.com/danielpatrickdp/superego-harness/internal/results"
)

// #region main

func main() {
	defaults := experiment.DefaultConfig()

	iterations := flag.Int("n", defaults.NumIterations, "number of trials")
	seed := flag.Int64("seed", 0, "random seed (0 = from clock)")
	a := flag.Int("a", defaults.Question.A, "question operand a")
	b := flag.Int("b", defaults.Question.B, "question operand b")
	initialKarma := flag.Float64("initial-karma", defaults.Karma.Initial, "starting karma")
	reward := flag.Float64("reward", defaults.Karma.RewardCorrect, "karma delta on correct trial")
	penalty := flag.Float64("penalty", defaults.Karma.PenaltyWrong, "karma delta on wrong trial")
	floor := flag.Float64("floor", defaults.Karma.Floor, "karma lower clamp")
	window := flag.Int("window", defaults.Metrics.WindowSize, "sliding window size")
	dbPath := flag.String("db", "", "optional results DB to save the run")
	csvPath := flag.String("csv", "", "optional CSV output path")
	reportPath := flag.String("report", "", "optional Markdown report output path")
	plotPath := flag.String("plot", "", "optional PNG trajectory plot output path")
	flag.Parse()

	config := defaults
	config.NumIterations = *iterations
	config.Seed = *seed
	config.Question = oracle.Question{A: *a, B: *b}
	config.Karma.Initial = *initialKarma
	config.Karma.RewardCorrect = *reward
	config.Karma.PenaltyWrong = *penalty
	config.Karma.Floor = *floor
	config.Metrics.WindowSize = *window

	if err := run(config, *dbPath, *csvPath, *reportPath, *plotPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(config experiment.Config, dbPath, csvPath, reportPath, plotPath string) error {
	runner, err := experiment.NewRunner(oracle.Addition, config)
	if err != nil {
		return err
	}
	runner.Logger = log.New(os.Stdout, "", 0)

	fmt.Printf("Question: %d + %d = ?\n", config.Question.A, config.Question.B)
	fmt.Printf("Correct answer: %d\n", oracle.Addition(config.Question))
	fmt.Printf("Iterations: %d | Seed: %d\n", config.NumIterations, runner.Seed())
	fmt.Printf("Initial karma: %.2f | Reward: %+.2f | Penalty: %+.2f | Floor: %.2f\n",
		config.Karma.Initial, config.Karma.RewardCorrect, config.Karma.PenaltyWrong, config.Karma.Floor)
	fmt.Println("------------------------------------------------------------")

	history, err := runner.Run()
	if err != nil {
		return err
	}

	fmt.Println("------------------------------------------------------------")
	printSummary(history)

	if dbPath != "" {
		store, err := results.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.SaveRun(config, runner.Seed(), history)
		if err != nil {
			return err
		}
		fmt.Printf("Saved run %s to %s\n", runID, dbPath)
	}

	if csvPath != "" {
		if err := writeFile(csvPath, func(f *os.File) error {
			return report.WriteCSV(f, history)
		}); err != nil {
			return err
		}
		fmt.Printf("CSV: %s\n", csvPath)
	}

	if reportPath != "" {
		if err := writeFile(reportPath, func(f *os.File) error {
			return report.WriteMarkdown(f, config, runner.Seed(), history)
		}); err != nil {
			return err
		}
		fmt.Printf("Report: %s\n", reportPath)
	}

	if plotPath != "" {
		if err := writeFile(plotPath, func(f *os.File) error {
			return report.WritePlot(f, history)
		}); err != nil {
			return err
		}
		fmt.Printf("Plot: %s\n", plotPath)
	}
	return nil
}

func printSummary(history experiment.History) {
	if len(history) == 0 {
		fmt.Println("No trials run.")
		return
	}
	summary := analysis.Analyze(history)
	last := history[len(history)-1]

	fmt.Printf("Final karma: %.2f\n", summary.FinalKarma)
	fmt.Printf("Final error rate: %.2f%%\n", summary.FinalErrorRate*100)
	fmt.Printf("Final windowed error rate: %.2f%%\n", last.WindowedErrorRate*100)
	fmt.Println()
	fmt.Printf("Early phase:  mean error %.2f%%, mean karma %.2f (%d/%d correct)\n",
		summary.Early.MeanErrorRate*100, summary.Early.MeanKarma, summary.Early.Correct, summary.Early.Trials)
	fmt.Printf("Middle phase: mean error %.2f%%, mean karma %.2f (%d/%d correct)\n",
		summary.Middle.MeanErrorRate*100, summary.Middle.MeanKarma, summary.Middle.Correct, summary.Middle.Trials)
	fmt.Printf("Late phase:   mean error %.2f%%, mean karma %.2f (%d/%d correct)\n",
		summary.Late.MeanErrorRate*100, summary.Late.MeanKarma, summary.Late.Correct, summary.Late.Trials)
	fmt.Printf("Improvement (early vs late): %.2f%%\n", summary.ImprovementPct)
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
