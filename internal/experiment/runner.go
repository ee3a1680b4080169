package experiment

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/danielpatrickdp/superego-harness/internal/karma"
	"github.com/danielpatrickdp/superego-harness/internal/metrics"
	"github.com/danielpatrickdp/superego-harness/internal/oracle"
	"github.com/danielpatrickdp/superego-harness/internal/policy"
)

// #region runner

// Runner drives one closed-loop experiment. Per trial: the policy proposes
// an answer, the oracle verifies it, the karma controller absorbs the
// correctness signal, and the aggregator records the outcome. Execution is
// single-threaded; a trial completes fully before the next begins.
type Runner struct {
	// Logger receives periodic progress lines when set. It has no influence
	// on algorithmic state.
	Logger *log.Logger

	question   oracle.Question
	iterations int
	seed       int64

	oracle     oracle.Oracle
	policy     *policy.Policy
	controller *karma.Controller
	aggregator *metrics.Aggregator
}

// NewRunner wires a policy, karma controller, and metrics aggregator for one
// run. A zero config seed is resolved from the clock; the effective seed is
// retained so the run can be reproduced.
func NewRunner(o oracle.Oracle, config Config) (*Runner, error) {
	if o == nil {
		return nil, errors.New("experiment: nil oracle")
	}
	if config.NumIterations < 0 {
		return nil, fmt.Errorf("experiment: negative iteration count %d", config.NumIterations)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pol, err := policy.New(o, config.Policy, rng)
	if err != nil {
		return nil, err
	}
	ctrl, err := karma.New(config.Karma)
	if err != nil {
		return nil, err
	}
	agg, err := metrics.New(config.Metrics)
	if err != nil {
		return nil, err
	}

	return &Runner{
		question:   config.Question,
		iterations: config.NumIterations,
		seed:       seed,
		oracle:     o,
		policy:     pol,
		controller: ctrl,
		aggregator: agg,
	}, nil
}

// Seed returns the effective random seed for this run.
func (r *Runner) Seed() int64 {
	return r.seed
}

// Karma returns the controller's current karma value.
func (r *Runner) Karma() float64 {
	return r.controller.Value()
}

// #endregion runner

// #region run-trial

// RunTrial executes one atomic propose → verify → update → record cycle and
// returns the trial snapshot.
func (r *Runner) RunTrial(iteration int) (TrialRecord, error) {
	answer, err := r.policy.Propose(r.question, r.controller.Value())
	if err != nil {
		return TrialRecord{}, fmt.Errorf("trial %d: %w", iteration, err)
	}

	truth := r.oracle(r.question)
	isCorrect := answer == truth

	newKarma := r.controller.Update(isCorrect)
	r.aggregator.Record(isCorrect)

	return TrialRecord{
		Iteration:         iteration,
		Answer:            answer,
		Correct:           isCorrect,
		Karma:             newKarma,
		ErrorRate:         r.aggregator.CumulativeErrorRate(),
		WindowedErrorRate: r.aggregator.WindowedErrorRate(),
	}, nil
}

// #endregion run-trial

// #region run

// Run executes the configured number of trials sequentially and returns the
// full history. Zero iterations yields an empty history.
func (r *Runner) Run() (History, error) {
	history := make(History, 0, r.iterations)

	for i := 1; i <= r.iterations; i++ {
		rec, err := r.RunTrial(i)
		if err != nil {
			return history, err
		}
		history = append(history, rec)

		if r.Logger != nil && (i == 1 || i%10 == 0) {
			status := "OK"
			if !rec.Correct {
				status = "X"
			}
			r.Logger.Printf("trial %3d: answer=%2d correct=%-2s karma=%6.2f error_rate=%5.2f%%",
				i, rec.Answer, status, rec.Karma, rec.ErrorRate*100)
		}
	}

	return history, nil
}

// #endregion run
