package replay

import (
	"errors"
	"fmt"
	"math"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
	"github.com/danielpatrickdp/superego-harness/internal/oracle"
)

// Tolerance for comparing replayed metrics against fixture values. The run
// itself is bit-deterministic under a fixed seed; the tolerance only absorbs
// decimal round-tripping through JSON.
const tolerance = 1e-9

// #region types

// CheckResult is the verdict for one checkpoint.
type CheckResult struct {
	Iteration int
	Pass      bool
	Reason    string
}

// Summary aggregates a replay verification.
type Summary struct {
	Checkpoints int
	Passed      int
	FinalOK     bool
	History     experiment.History
}

// Ok reports whether every checkpoint and the final state matched.
func (s Summary) Ok() bool {
	return s.Passed == s.Checkpoints && s.FinalOK
}

// #endregion types

// #region replay

// Replay reruns the fixture's experiment from its seed and verifies the
// produced trajectory against the recorded checkpoints.
func Replay(f *Fixture) ([]CheckResult, Summary, error) {
	if f.Config.Seed == 0 {
		return nil, Summary{}, errors.New("replay: fixture requires an explicit non-zero seed")
	}

	runner, err := experiment.NewRunner(oracle.Addition, f.Config.ToExperimentConfig())
	if err != nil {
		return nil, Summary{}, fmt.Errorf("replay: %w", err)
	}
	history, err := runner.Run()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("replay: %w", err)
	}

	byIteration := make(map[int]experiment.TrialRecord, len(history))
	for _, rec := range history {
		byIteration[rec.Iteration] = rec
	}

	results := make([]CheckResult, 0, len(f.Checkpoints))
	passed := 0
	for _, cp := range f.Checkpoints {
		result := checkOne(cp, byIteration)
		if result.Pass {
			passed++
		}
		results = append(results, result)
	}

	summary := Summary{
		Checkpoints: len(f.Checkpoints),
		Passed:      passed,
		FinalOK:     checkFinal(f.Final, history),
		History:     history,
	}
	return results, summary, nil
}

func checkOne(cp FixtureCheckpoint, byIteration map[int]experiment.TrialRecord) CheckResult {
	rec, ok := byIteration[cp.Iteration]
	if !ok {
		return CheckResult{Iteration: cp.Iteration, Reason: "iteration not reached"}
	}
	if !approxEqual(rec.Karma, cp.Karma) {
		return CheckResult{
			Iteration: cp.Iteration,
			Reason:    fmt.Sprintf("karma %.6f, expected %.6f", rec.Karma, cp.Karma),
		}
	}
	if !approxEqual(rec.ErrorRate, cp.ErrorRate) {
		return CheckResult{
			Iteration: cp.Iteration,
			Reason:    fmt.Sprintf("error rate %.6f, expected %.6f", rec.ErrorRate, cp.ErrorRate),
		}
	}
	if !approxEqual(rec.WindowedErrorRate, cp.WindowedErrorRate) {
		return CheckResult{
			Iteration: cp.Iteration,
			Reason:    fmt.Sprintf("windowed error rate %.6f, expected %.6f", rec.WindowedErrorRate, cp.WindowedErrorRate),
		}
	}
	return CheckResult{Iteration: cp.Iteration, Pass: true}
}

func checkFinal(final FixtureFinal, history experiment.History) bool {
	if len(history) != final.Trials {
		return false
	}
	if len(history) == 0 {
		return true
	}
	last := history[len(history)-1]
	return approxEqual(last.Karma, final.Karma) && approxEqual(last.ErrorRate, final.ErrorRate)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// #endregion replay
