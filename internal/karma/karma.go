package karma

import (
	"fmt"
	"math"
)

// #region config

// Config holds the reward ledger parameters (TK-APO).
type Config struct {
	Initial       float64 // starting karma value
	RewardCorrect float64 // karma delta on a correct trial
	PenaltyWrong  float64 // karma delta on an incorrect trial
	Floor         float64 // lower clamp applied after every penalty
}

// DefaultConfig returns the reference TK-APO constants: symmetric +2/-2
// deltas with a -30 floor and no ceiling.
func DefaultConfig() Config {
	return Config{
		Initial:       0.0,
		RewardCorrect: 2.0,
		PenaltyWrong:  -2.0,
		Floor:         -30.0,
	}
}

func (c Config) validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"initial", c.Initial},
		{"reward_correct", c.RewardCorrect},
		{"penalty_wrong", c.PenaltyWrong},
		{"floor", c.Floor},
	}
	for _, ck := range checks {
		if math.IsNaN(ck.v) || math.IsInf(ck.v, 0) {
			return fmt.Errorf("karma config: %s must be finite, got %v", ck.name, ck.v)
		}
	}
	return nil
}

// #endregion config

// #region controller

// Controller owns the scalar karma state ("Superego"). The floor is
// asymmetric on purpose: penalties cannot push karma below Floor, while
// rewards may drive it up without bound, so the policy can always recover
// from a losing streak but keeps climbing toward its probability ceiling.
type Controller struct {
	karma  float64
	config Config
}

// New creates a Controller at the configured initial karma.
func New(config Config) (*Controller, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Controller{karma: config.Initial, config: config}, nil
}

// Update applies the reward or penalty for one trial and returns the new
// karma. The floor clamp runs immediately after every penalty.
func (c *Controller) Update(isCorrect bool) float64 {
	if isCorrect {
		c.karma += c.config.RewardCorrect
	} else {
		c.karma += c.config.PenaltyWrong
		if c.karma < c.config.Floor {
			c.karma = c.config.Floor
		}
	}
	return c.karma
}

// Value reads the current karma.
func (c *Controller) Value() float64 {
	return c.karma
}

// #endregion controller
