package experiment

import (
	"github.com/danielpatrickdp/superego-harness/internal/karma"
	"github.com/danielpatrickdp/superego-harness/internal/metrics"
	"github.com/danielpatrickdp/superego-harness/internal/oracle"
	"github.com/danielpatrickdp/superego-harness/internal/policy"
)

// #region trial-record
// TrialRecord is the immutable snapshot produced once per trial.
type TrialRecord struct {
	Iteration         int     `json:"iteration"`
	Answer            int     `json:"answer"`
	Correct           bool    `json:"correct"`
	Karma             float64 `json:"karma"`
	ErrorRate         float64 `json:"error_rate"`
	WindowedErrorRate float64 `json:"windowed_error_rate"`
}
// #endregion trial-record

// #region history
// History is the ordered sequence of trial records for one run. Insertion
// order is the time axis for all downstream analysis; records are append-only.
type History []TrialRecord
// #endregion history

// #region config

// Config bundles everything one experiment run needs.
type Config struct {
	Question      oracle.Question
	NumIterations int
	Seed          int64 // 0 means seed from the clock

	Policy  policy.Config
	Karma   karma.Config
	Metrics metrics.Config
}

// DefaultConfig returns the reference experiment: 100 trials of 1+1 with
// default policy, karma, and window parameters.
func DefaultConfig() Config {
	return Config{
		Question:      oracle.Question{A: 1, B: 1},
		NumIterations: 100,
		Policy:        policy.DefaultConfig(),
		Karma:         karma.DefaultConfig(),
		Metrics:       metrics.DefaultConfig(),
	}
}

// #endregion config
