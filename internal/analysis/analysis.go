package analysis

import "github.com/danielpatrickdp/superego-harness/internal/experiment"

// #region types

// PhaseStats summarizes one third of an experiment history.
type PhaseStats struct {
	Trials        int
	Correct       int
	MeanErrorRate float64
	MeanKarma     float64
}

// Summary is the phase breakdown of a finished run. Improvement compares the
// early phase's mean error rate against the late phase's.
type Summary struct {
	Early  PhaseStats
	Middle PhaseStats
	Late   PhaseStats

	ImprovementPct float64
	FinalKarma     float64
	FinalErrorRate float64
}

// #endregion types

// #region analyze

// Analyze splits the history into early/middle/late thirds and computes
// per-phase statistics. An empty history yields a zero summary.
func Analyze(history experiment.History) Summary {
	n := len(history)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Early:          phaseStats(history[:n/3]),
		Middle:         phaseStats(history[n/3 : 2*n/3]),
		Late:           phaseStats(history[2*n/3:]),
		FinalKarma:     history[n-1].Karma,
		FinalErrorRate: history[n-1].ErrorRate,
	}
	if s.Early.MeanErrorRate > 0 {
		s.ImprovementPct = (s.Early.MeanErrorRate - s.Late.MeanErrorRate) / s.Early.MeanErrorRate * 100
	}
	return s
}

func phaseStats(phase experiment.History) PhaseStats {
	if len(phase) == 0 {
		return PhaseStats{}
	}
	var errSum, karmaSum float64
	correct := 0
	for _, rec := range phase {
		errSum += rec.ErrorRate
		karmaSum += rec.Karma
		if rec.Correct {
			correct++
		}
	}
	n := float64(len(phase))
	return PhaseStats{
		Trials:        len(phase),
		Correct:       correct,
		MeanErrorRate: errSum / n,
		MeanKarma:     karmaSum / n,
	}
}

// #endregion analyze
