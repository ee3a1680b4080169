package report

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/danielpatrickdp/superego-harness/internal/experiment"
)

func TestWritePlot(t *testing.T) {
	history := make(experiment.History, 60)
	karmaVal := 0.0
	correctCount := 0
	for i := range history {
		correct := i%3 != 0
		if correct {
			karmaVal += 2
			correctCount++
		} else {
			karmaVal -= 2
		}
		history[i] = experiment.TrialRecord{
			Iteration:         i + 1,
			Answer:            2,
			Correct:           correct,
			Karma:             karmaVal,
			ErrorRate:         1.0 - float64(correctCount)/float64(i+1),
			WindowedErrorRate: 1.0 / 3.0,
		}
	}

	var buf bytes.Buffer
	if err := WritePlot(&buf, history); err != nil {
		t.Fatalf("WritePlot: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("plot has empty bounds %v", b)
	}
}

func TestWritePlotEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlot(&buf, nil); err == nil {
		t.Fatal("expected an error for an empty history")
	}
}
