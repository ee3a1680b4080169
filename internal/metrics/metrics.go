package metrics

import "fmt"

// #region config

// Config holds the sliding-window capacity for the smoothed error rate.
type Config struct {
	WindowSize int
}

// DefaultConfig returns a 50-trial window.
func DefaultConfig() Config {
	return Config{WindowSize: 50}
}

// #endregion config

// #region aggregator

// Aggregator keeps two views of correctness over one experiment: all-time
// tallies for the cumulative error rate and a bounded FIFO window for the
// smoothed error rate. The two statistics can diverge arbitrarily on long
// runs; one measures all-time behavior, the other recent behavior.
type Aggregator struct {
	windowSize int
	window     []bool
	total      int
	correct    int
}

// New creates an Aggregator with an empty window and zeroed tallies.
func New(config Config) (*Aggregator, error) {
	if config.WindowSize <= 0 {
		return nil, fmt.Errorf("metrics config: window size must be positive, got %d", config.WindowSize)
	}
	return &Aggregator{
		windowSize: config.WindowSize,
		window:     make([]bool, 0, config.WindowSize),
	}, nil
}

// Record appends one trial outcome, evicting the oldest window entry at
// capacity. Tallies are monotone and never reset.
func (a *Aggregator) Record(isCorrect bool) {
	a.total++
	if isCorrect {
		a.correct++
	}
	if len(a.window) == a.windowSize {
		copy(a.window, a.window[1:])
		a.window[len(a.window)-1] = isCorrect
		return
	}
	a.window = append(a.window, isCorrect)
}

// CumulativeErrorRate returns 1 - correct/total over the whole run. With no
// trials recorded it returns 1.0: no evidence is treated as maximal
// uncertainty, not as success.
func (a *Aggregator) CumulativeErrorRate() float64 {
	if a.total == 0 {
		return 1.0
	}
	return 1.0 - float64(a.correct)/float64(a.total)
}

// WindowedErrorRate returns the fraction of incorrect outcomes in the
// current window, or 1.0 when the window is empty.
func (a *Aggregator) WindowedErrorRate() float64 {
	if len(a.window) == 0 {
		return 1.0
	}
	errors := 0
	for _, ok := range a.window {
		if !ok {
			errors++
		}
	}
	return float64(errors) / float64(len(a.window))
}

// Total returns the all-time trial count.
func (a *Aggregator) Total() int {
	return a.total
}

// Correct returns the all-time correct count.
func (a *Aggregator) Correct() int {
	return a.correct
}

// #endregion aggregator
