package karma

import (
	"math"
	"testing"
)

func newController(t *testing.T, config Config) *Controller {
	t.Helper()
	c, err := New(config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestUpdateRewardAndPenalty(t *testing.T) {
	c := newController(t, DefaultConfig())

	if got := c.Update(true); got != 2.0 {
		t.Fatalf("after one correct trial karma = %v, want 2.0", got)
	}
	if got := c.Update(true); got != 4.0 {
		t.Fatalf("after two correct trials karma = %v, want 4.0", got)
	}
	if got := c.Update(false); got != 2.0 {
		t.Fatalf("after one wrong trial karma = %v, want 2.0", got)
	}
}

func TestSingleWrongTrialFromZero(t *testing.T) {
	c := newController(t, DefaultConfig())

	// -2.0 > -30.0, so the clamp must not fire.
	if got := c.Update(false); got != -2.0 {
		t.Fatalf("karma = %v, want -2.0", got)
	}
}

func TestFloorInvariant(t *testing.T) {
	c := newController(t, DefaultConfig())

	for i := 0; i < 100; i++ {
		if got := c.Update(false); got < -30.0 {
			t.Fatalf("karma %v fell below the floor after %d wrong trials", got, i+1)
		}
	}
	if got := c.Value(); got != -30.0 {
		t.Fatalf("karma = %v after a long losing streak, want the floor -30.0", got)
	}
}

func TestNoCeiling(t *testing.T) {
	c := newController(t, DefaultConfig())

	for i := 0; i < 1000; i++ {
		c.Update(true)
	}
	if got := c.Value(); got != 2000.0 {
		t.Fatalf("karma = %v after 1000 correct trials, want 2000.0", got)
	}
}

func TestFloorOnlyAppliesAfterPenalty(t *testing.T) {
	config := DefaultConfig()
	config.Initial = -40.0
	c := newController(t, config)

	// A reward from below the floor does not clamp.
	if got := c.Update(true); got != -38.0 {
		t.Fatalf("karma = %v, want -38.0", got)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nan reward", func(c *Config) { c.RewardCorrect = math.NaN() }},
		{"inf penalty", func(c *Config) { c.PenaltyWrong = math.Inf(-1) }},
		{"nan floor", func(c *Config) { c.Floor = math.NaN() }},
		{"inf initial", func(c *Config) { c.Initial = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(&config)
			if _, err := New(config); err == nil {
				t.Fatal("expected construction to fail")
			}
		})
	}
}
