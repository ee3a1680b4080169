package experiment

import (
	"math"
	"reflect"
	"testing"

	"github.com/danielpatrickdp/superego-harness/internal/oracle"
)

func runSeeded(t *testing.T, config Config) History {
	t.Helper()
	runner, err := NewRunner(oracle.Addition, config)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	history, err := runner.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return history
}

func TestDeterminismUnderFixedSeed(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 42
	config.NumIterations = 200

	first := runSeeded(t, config)
	second := runSeeded(t, config)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs with the same seed produced different histories")
	}
}

func TestZeroIterations(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 1
	config.NumIterations = 0

	history := runSeeded(t, config)
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}
}

func TestTrialRecordConsistency(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 7
	config.NumIterations = 80

	history := runSeeded(t, config)
	if len(history) != 80 {
		t.Fatalf("expected 80 records, got %d", len(history))
	}

	// Recompute every derived field from the correctness flags alone.
	truth := oracle.Addition(config.Question)
	karmaVal := config.Karma.Initial
	correctCount := 0
	var window []bool

	for i, rec := range history {
		if rec.Iteration != i+1 {
			t.Fatalf("record %d has iteration %d", i, rec.Iteration)
		}
		if rec.Correct != (rec.Answer == truth) {
			t.Fatalf("iteration %d: correctness flag disagrees with answer %d", rec.Iteration, rec.Answer)
		}

		if rec.Correct {
			karmaVal += config.Karma.RewardCorrect
			correctCount++
		} else {
			karmaVal += config.Karma.PenaltyWrong
			if karmaVal < config.Karma.Floor {
				karmaVal = config.Karma.Floor
			}
		}
		if math.Abs(rec.Karma-karmaVal) > 1e-12 {
			t.Fatalf("iteration %d: karma %v, recomputed %v", rec.Iteration, rec.Karma, karmaVal)
		}

		wantCumulative := 1.0 - float64(correctCount)/float64(i+1)
		if math.Abs(rec.ErrorRate-wantCumulative) > 1e-12 {
			t.Fatalf("iteration %d: error rate %v, recomputed %v", rec.Iteration, rec.ErrorRate, wantCumulative)
		}

		window = append(window, rec.Correct)
		if len(window) > config.Metrics.WindowSize {
			window = window[1:]
		}
		errs := 0
		for _, ok := range window {
			if !ok {
				errs++
			}
		}
		wantWindowed := float64(errs) / float64(len(window))
		if math.Abs(rec.WindowedErrorRate-wantWindowed) > 1e-12 {
			t.Fatalf("iteration %d: windowed error rate %v, recomputed %v", rec.Iteration, rec.WindowedErrorRate, wantWindowed)
		}
	}
}

func TestNetBehaviorCorrection(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 42
	config.NumIterations = 100

	history := runSeeded(t, config)

	atTen := history[9].ErrorRate
	atHundred := history[99].ErrorRate
	if atHundred >= atTen {
		t.Fatalf("cumulative error rate did not improve: %.4f at trial 10, %.4f at trial 100", atTen, atHundred)
	}
	if final := history[99].Karma; final <= config.Karma.Initial {
		t.Fatalf("karma did not rise above its initial value: %v", final)
	}
}

func TestNewRunnerValidation(t *testing.T) {
	config := DefaultConfig()
	if _, err := NewRunner(nil, config); err == nil {
		t.Fatal("expected error for nil oracle")
	}

	config.NumIterations = -1
	if _, err := NewRunner(oracle.Addition, config); err == nil {
		t.Fatal("expected error for negative iteration count")
	}

	config = DefaultConfig()
	config.Metrics.WindowSize = 0
	if _, err := NewRunner(oracle.Addition, config); err == nil {
		t.Fatal("expected window-size validation to surface")
	}
}

func TestClockSeedIsRetained(t *testing.T) {
	runner, err := NewRunner(oracle.Addition, DefaultConfig())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if runner.Seed() == 0 {
		t.Fatal("expected a resolved non-zero seed")
	}
}
