package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/analysis"
	"github.com/danielpatrickdp/superego-harness/internal/experiment"
)

// #region csv

// WriteCSV writes one row per trial record.
func WriteCSV(w io.Writer, history experiment.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"iteration", "answer", "correct", "karma", "error_rate", "windowed_error_rate"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range history {
		row := []string{
			strconv.Itoa(rec.Iteration),
			strconv.Itoa(rec.Answer),
			strconv.FormatBool(rec.Correct),
			strconv.FormatFloat(rec.Karma, 'f', 4, 64),
			strconv.FormatFloat(rec.ErrorRate, 'f', 6, 64),
			strconv.FormatFloat(rec.WindowedErrorRate, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", rec.Iteration, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// #endregion csv

// #region markdown

// WriteMarkdown renders a full experiment report: setup, final metrics,
// phase analysis, and a verdict on whether the error rate improved.
func WriteMarkdown(w io.Writer, config experiment.Config, seed int64, history experiment.History) error {
	summary := analysis.Analyze(history)

	fmt.Fprintf(w, "# Superego Experiment Report\n\n")
	fmt.Fprintf(w, "**Generated**: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "## Setup\n\n")
	fmt.Fprintf(w, "- Question: %d + %d\n", config.Question.A, config.Question.B)
	fmt.Fprintf(w, "- Iterations: %d\n", len(history))
	fmt.Fprintf(w, "- Seed: %d\n", seed)
	fmt.Fprintf(w, "- Initial karma: %.2f\n", config.Karma.Initial)
	fmt.Fprintf(w, "- Reward (correct): %+.2f\n", config.Karma.RewardCorrect)
	fmt.Fprintf(w, "- Penalty (wrong): %+.2f\n", config.Karma.PenaltyWrong)
	fmt.Fprintf(w, "- Karma floor: %.2f\n", config.Karma.Floor)
	fmt.Fprintf(w, "- Window size: %d\n\n", config.Metrics.WindowSize)

	if len(history) == 0 {
		fmt.Fprintf(w, "No trials recorded.\n")
		return nil
	}

	fmt.Fprintf(w, "## Final Metrics\n\n")
	fmt.Fprintf(w, "- Final karma: %.2f\n", summary.FinalKarma)
	fmt.Fprintf(w, "- Final error rate: %.2f%%\n", summary.FinalErrorRate*100)
	last := history[len(history)-1]
	fmt.Fprintf(w, "- Final windowed error rate: %.2f%%\n\n", last.WindowedErrorRate*100)

	fmt.Fprintf(w, "## Phase Analysis\n\n")
	fmt.Fprintf(w, "| Phase | Trials | Correct | Mean Error Rate | Mean Karma |\n")
	fmt.Fprintf(w, "|-------|--------|---------|-----------------|------------|\n")
	writePhaseRow(w, "Early", summary.Early)
	writePhaseRow(w, "Middle", summary.Middle)
	writePhaseRow(w, "Late", summary.Late)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "## Verdict\n\n")
	fmt.Fprintf(w, "- Error-rate improvement (early vs late): %.2f%%\n", summary.ImprovementPct)
	if summary.ImprovementPct > 0 {
		fmt.Fprintf(w, "- Behavior correction achieved through karma weighting alone, with no gradient backpropagation.\n")
	} else {
		fmt.Fprintf(w, "- No improvement under the current parameters; consider adjusting reward/penalty or the window size.\n")
	}
	return nil
}

func writePhaseRow(w io.Writer, name string, stats analysis.PhaseStats) {
	fmt.Fprintf(w, "| %s | %d | %d | %.2f%% | %.2f |\n",
		name, stats.Trials, stats.Correct, stats.MeanErrorRate*100, stats.MeanKarma)
}

// #endregion markdown
