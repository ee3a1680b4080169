package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
	"github.com/danielpatrickdp/superego-harness/internal/karma"
	"github.com/danielpatrickdp/superego-harness/internal/metrics"
	"github.com/danielpatrickdp/superego-harness/internal/oracle"
	"github.com/danielpatrickdp/superego-harness/internal/policy"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a fully
// seeded experiment configuration plus the trajectory it must reproduce.
type Fixture struct {
	Description string              `json:"description"`
	Config      FixtureConfig       `json:"config"`
	Checkpoints []FixtureCheckpoint `json:"checkpoints"`
	Final       FixtureFinal        `json:"final"`
}

// FixtureConfig mirrors experiment.Config with JSON tags. Seed must be
// explicit and non-zero; a clock-seeded run cannot be replayed.
type FixtureConfig struct {
	QuestionA     int   `json:"question_a"`
	QuestionB     int   `json:"question_b"`
	NumIterations int   `json:"num_iterations"`
	Seed          int64 `json:"seed"`

	PMin        float64 `json:"p_min"`
	PMax        float64 `json:"p_max"`
	Scale       float64 `json:"scale"`
	CandidateLo int     `json:"candidate_lo"`
	CandidateHi int     `json:"candidate_hi"`

	InitialKarma  float64 `json:"initial_karma"`
	RewardCorrect float64 `json:"reward_correct"`
	PenaltyWrong  float64 `json:"penalty_wrong"`
	KarmaFloor    float64 `json:"karma_floor"`

	WindowSize int `json:"window_size"`
}

// FixtureCheckpoint pins the expected metrics at one iteration.
type FixtureCheckpoint struct {
	Iteration         int     `json:"iteration"`
	Karma             float64 `json:"karma"`
	ErrorRate         float64 `json:"error_rate"`
	WindowedErrorRate float64 `json:"windowed_error_rate"`
}

// FixtureFinal pins the expected end-of-run state.
type FixtureFinal struct {
	Trials    int     `json:"trials"`
	Karma     float64 `json:"karma"`
	ErrorRate float64 `json:"error_rate"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToExperimentConfig converts a FixtureConfig to a domain experiment.Config.
func (fc *FixtureConfig) ToExperimentConfig() experiment.Config {
	return experiment.Config{
		Question:      oracle.Question{A: fc.QuestionA, B: fc.QuestionB},
		NumIterations: fc.NumIterations,
		Seed:          fc.Seed,
		Policy: policy.Config{
			PMin:        fc.PMin,
			PMax:        fc.PMax,
			Scale:       fc.Scale,
			CandidateLo: fc.CandidateLo,
			CandidateHi: fc.CandidateHi,
		},
		Karma: karma.Config{
			Initial:       fc.InitialKarma,
			RewardCorrect: fc.RewardCorrect,
			PenaltyWrong:  fc.PenaltyWrong,
			Floor:         fc.KarmaFloor,
		},
		Metrics: metrics.Config{WindowSize: fc.WindowSize},
	}
}

// FromExperimentConfig converts a domain config (with its effective seed)
// to the fixture form.
func FromExperimentConfig(cfg experiment.Config, seed int64) FixtureConfig {
	return FixtureConfig{
		QuestionA:     cfg.Question.A,
		QuestionB:     cfg.Question.B,
		NumIterations: cfg.NumIterations,
		Seed:          seed,
		PMin:          cfg.Policy.PMin,
		PMax:          cfg.Policy.PMax,
		Scale:         cfg.Policy.Scale,
		CandidateLo:   cfg.Policy.CandidateLo,
		CandidateHi:   cfg.Policy.CandidateHi,
		InitialKarma:  cfg.Karma.Initial,
		RewardCorrect: cfg.Karma.RewardCorrect,
		PenaltyWrong:  cfg.Karma.PenaltyWrong,
		KarmaFloor:    cfg.Karma.Floor,
		WindowSize:    cfg.Metrics.WindowSize,
	}
}

// #endregion fixture-loader

// #region fixture-export

// ExportFixture builds a fixture from a finished run, taking a checkpoint
// every `every` iterations plus the last record.
func ExportFixture(cfg experiment.Config, seed int64, history experiment.History, every int) *Fixture {
	if every <= 0 {
		every = 10
	}
	f := &Fixture{
		Description: fmt.Sprintf("exported run: %d+%d over %d trials, seed %d",
			cfg.Question.A, cfg.Question.B, len(history), seed),
		Config: FromExperimentConfig(cfg, seed),
	}
	f.Config.NumIterations = len(history)

	for i, rec := range history {
		if rec.Iteration%every == 0 || i == len(history)-1 {
			f.Checkpoints = append(f.Checkpoints, FixtureCheckpoint{
				Iteration:         rec.Iteration,
				Karma:             rec.Karma,
				ErrorRate:         rec.ErrorRate,
				WindowedErrorRate: rec.WindowedErrorRate,
			})
		}
	}

	f.Final = FixtureFinal{Trials: len(history), Karma: cfg.Karma.Initial, ErrorRate: 1.0}
	if len(history) > 0 {
		last := history[len(history)-1]
		f.Final.Karma = last.Karma
		f.Final.ErrorRate = last.ErrorRate
	}
	return f
}

// #endregion fixture-export
