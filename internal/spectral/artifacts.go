package spectral

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/superego-harness/internal/stats"
)

// #region default-texts

// DefaultTexts is the reference probe set for the baseline measurement.
func DefaultTexts() []string {
	return []string{
		"Explain what a neuro-symbolic system is in one sentence.",
		"Give an analogy: the solar system and atomic structure.",
		"Explain catastrophic forgetting and one way to mitigate it.",
		"Why does CPU-first matter for edge AI?",
		"Give 3 tips for making answers more consistent and less hallucinated.",
		"Plan the steps for a robot fetching water, as briefly as possible.",
		"Explain the intuition behind PageRank and where personalized PageRank is used.",
		"Summarize the core TK-APO formula and its meaning in 2-3 sentences.",
		"How can a knowledge graph compress context? Give an example.",
		"Explain why constraining output phrasing improves similarity distributions.",
	}
}

// #endregion default-texts

// #region csv

// WriteCSV writes one row per sample result.
func WriteCSV(w io.Writer, results []SampleResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"idx", "cosine", "spec_mse", "spec_cosine", "text"}); err != nil {
		return fmt.Errorf("write spectral csv header: %w", err)
	}
	for i, r := range results {
		text := strings.NewReplacer("\n", " ", "\r", " ").Replace(r.Text)
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(r.Cosine, 'f', 6, 64),
			strconv.FormatFloat(r.SpecMSE, 'f', 8, 64),
			strconv.FormatFloat(r.SpecCosine, 'f', 6, 64),
			text,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write spectral csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// #endregion csv

// #region report

// WriteReport renders the baseline measurement report. This measures
// frequency-domain similarity only; it makes no claim about spectral loss
// effectiveness.
func WriteReport(w io.Writer, setup Setup, results []SampleResult) error {
	fmt.Fprintf(w, "# Spectral Alignment Baseline\n\n")
	fmt.Fprintf(w, "Baseline measurement of frequency-domain similarity between the mapped\n")
	fmt.Fprintf(w, "draft embedding (`mapped = W * draft_emb`) and the teacher embedding.\n\n")

	fmt.Fprintf(w, "## Setup\n\n")
	fmt.Fprintf(w, "- Ollama: `%s`\n", setup.OllamaURL)
	fmt.Fprintf(w, "- Draft model: `%s`\n", setup.DraftModel)
	fmt.Fprintf(w, "- Teacher model: `%s`\n", setup.TeacherModel)
	fmt.Fprintf(w, "- W: `%s` (shape=%dx%d)\n", setup.MatrixPath, setup.MatrixRows, setup.MatrixCols)
	fmt.Fprintf(w, "- Samples: %d\n\n", len(results))

	fmt.Fprintf(w, "## Metrics\n\n")
	fmt.Fprintf(w, "- `cosine`: cosine(mapped, teacher)\n")
	fmt.Fprintf(w, "- `spec_mse`: MSE(|RFFT(mapped)|, |RFFT(teacher)|) on L2-normalized magnitude spectra\n")
	fmt.Fprintf(w, "- `spec_cosine`: cosine similarity between normalized magnitude spectra\n\n")

	cosines := make([]float64, len(results))
	specMSEs := make([]float64, len(results))
	specCosines := make([]float64, len(results))
	for i, r := range results {
		cosines[i] = r.Cosine
		specMSEs[i] = r.SpecMSE
		specCosines[i] = r.SpecCosine
	}

	fmt.Fprintf(w, "## Summary\n\n")
	writeStatLine(w, "cosine", cosines, 6)
	writeStatLine(w, "spec_mse", specMSEs, 8)
	writeStatLine(w, "spec_cosine", specCosines, 6)
	return nil
}

func writeStatLine(w io.Writer, name string, xs []float64, prec int) {
	fmt.Fprintf(w, "- %s: mean=%.*f, p50=%.*f, p95=%.*f\n",
		name, prec, stats.Mean(xs), prec, stats.Percentile(xs, 0.50), prec, stats.Percentile(xs, 0.95))
}

// #endregion report
