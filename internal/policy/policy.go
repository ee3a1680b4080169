package policy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/danielpatrickdp/superego-harness/internal/oracle"
)

// ErrNoWrongCandidates is returned when excluding the correct answer leaves
// the wrong-answer candidate range empty. This indicates a configuration
// mismatch between the candidate range and the problem domain.
var ErrNoWrongCandidates = errors.New("policy: no wrong-answer candidates after excluding the correct answer")

// #region config

// Config holds the karma-to-probability mapping and the wrong-answer pool.
type Config struct {
	PMin  float64 // residual correctness floor, never reached exactly
	PMax  float64 // correctness ceiling, never reached exactly
	Scale float64 // tanh temperature applied to karma

	// Wrong answers are drawn uniformly from [CandidateLo, CandidateHi],
	// excluding the correct answer.
	CandidateLo int
	CandidateHi int
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		PMin:        0.2,
		PMax:        0.95,
		Scale:       8.0,
		CandidateLo: 1,
		CandidateHi: 10,
	}
}

func (c Config) validate() error {
	for _, v := range []float64{c.PMin, c.PMax, c.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("policy config: non-finite parameter %v", v)
		}
	}
	if c.PMin < 0 || c.PMax > 1 || c.PMin >= c.PMax {
		return fmt.Errorf("policy config: need 0 <= PMin < PMax <= 1, got [%v, %v]", c.PMin, c.PMax)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("policy config: scale must be positive, got %v", c.Scale)
	}
	if c.CandidateHi < c.CandidateLo {
		return fmt.Errorf("policy config: empty candidate range [%d, %d]", c.CandidateLo, c.CandidateHi)
	}
	return nil
}

// #endregion config

// #region policy

// Policy is the noisy answer generator ("Id"). It knows the correct answer
// through the oracle so it can deliberately hit or avoid it; its hit
// probability is driven entirely by the current karma value.
type Policy struct {
	oracle oracle.Oracle
	config Config
	rng    *rand.Rand
}

// New creates a Policy. The random source is injected so experiments are
// reproducible under a fixed seed.
func New(o oracle.Oracle, config Config, rng *rand.Rand) (*Policy, error) {
	if o == nil {
		return nil, errors.New("policy: nil oracle")
	}
	if rng == nil {
		return nil, errors.New("policy: nil random source")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Policy{oracle: o, config: config, rng: rng}, nil
}

// #endregion policy

// #region probability

// CorrectProbability maps karma to the probability of emitting the correct
// answer: PMin + (PMax-PMin) * (tanh(karma/Scale) + 1) / 2. The result stays
// strictly inside (PMin, PMax) for all finite karma, so the policy is never
// deterministic and never fully random.
func (p *Policy) CorrectProbability(karma float64) float64 {
	normalized := math.Tanh(karma / p.config.Scale)
	return p.config.PMin + (p.config.PMax-p.config.PMin)*(normalized+1)/2
}

// #endregion probability

// #region propose

// Propose emits an answer for the question. One uniform draw decides between
// the correct answer and a uniformly chosen wrong answer from the candidate
// range.
func (p *Policy) Propose(q oracle.Question, karma float64) (int, error) {
	correct := p.oracle(q)
	if p.rng.Float64() < p.CorrectProbability(karma) {
		return correct, nil
	}
	return p.wrongAnswer(correct)
}

// wrongAnswer draws uniformly from the candidate range minus the correct
// answer by skipping over it.
func (p *Policy) wrongAnswer(correct int) (int, error) {
	n := p.config.CandidateHi - p.config.CandidateLo + 1
	excluded := correct >= p.config.CandidateLo && correct <= p.config.CandidateHi
	if excluded {
		n--
	}
	if n <= 0 {
		return 0, ErrNoWrongCandidates
	}
	v := p.config.CandidateLo + p.rng.Intn(n)
	if excluded && v >= correct {
		v++
	}
	return v, nil
}

// #endregion propose
