package spectral

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// #region types

// SampleResult holds the frequency-domain comparison metrics for one text.
type SampleResult struct {
	Text       string  `json:"text"`
	Cosine     float64 `json:"cosine"`      // cosine(mapped, teacher)
	SpecMSE    float64 `json:"spec_mse"`    // MSE between normalized magnitude spectra
	SpecCosine float64 `json:"spec_cosine"` // cosine between normalized magnitude spectra
}

// Setup records the comparison parameters for the report.
type Setup struct {
	OllamaURL    string
	DraftModel   string
	TeacherModel string
	MatrixPath   string
	MatrixRows   int
	MatrixCols   int
}

// #endregion types

// #region vector-ops

// L2Normalize returns x scaled to unit L2 norm. A zero vector is returned
// unchanged.
func L2Normalize(x []float64) []float64 {
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	n := math.Sqrt(sumSq)
	out := make([]float64, len(x))
	if n == 0 {
		copy(out, x)
		return out
	}
	for i, v := range x {
		out[i] = v / n
	}
	return out
}

// Cosine returns the cosine similarity of a and b after L2 normalization.
func Cosine(a, b []float64) float64 {
	a = L2Normalize(a)
	b = L2Normalize(b)
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// #endregion vector-ops

// #region spectrum

// MagnitudeSpectrum returns the magnitude of the real FFT of x. Phase is
// discarded; the magnitude spectrum is more robust to phase noise.
func MagnitudeSpectrum(x []float64) []float64 {
	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// PadToSame zero-pads the shorter of a and b so both have equal length.
// rfft lengths differ when the input dimensions differ.
func PadToSame(a, b []float64) ([]float64, []float64) {
	if len(a) == len(b) {
		return a, b
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pa := make([]float64, n)
	pb := make([]float64, n)
	copy(pa, a)
	copy(pb, b)
	return pa, pb
}

// SpectralMSE returns the mean squared difference between two equal-length
// spectra.
func SpectralMSE(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(len(a))
}

// #endregion spectrum

// #region compare

// Compare computes all three metrics for one mapped/teacher embedding pair.
func Compare(mapped, teacher []float64) (cosine, specMSE, specCosine float64) {
	mapped = L2Normalize(mapped)
	teacher = L2Normalize(teacher)
	cosine = Cosine(mapped, teacher)

	magM := MagnitudeSpectrum(mapped)
	magT := MagnitudeSpectrum(teacher)
	magM, magT = PadToSame(magM, magT)
	magM = L2Normalize(magM)
	magT = L2Normalize(magT)

	specMSE = SpectralMSE(magM, magT)
	var dot float64
	for i := range magM {
		dot += magM[i] * magT[i]
	}
	specCosine = dot
	return cosine, specMSE, specCosine
}

// #endregion compare

// #region run

// Run embeds every text with both models, maps the draft embedding through
// the alignment matrix, and compares it to the teacher embedding in the
// frequency domain.
func Run(ctx context.Context, client *OllamaClient, w *mat.Dense, texts []string, draftModel, teacherModel string) ([]SampleResult, error) {
	results := make([]SampleResult, 0, len(texts))

	for i, text := range texts {
		draft, err := client.Embeddings(ctx, draftModel, text)
		if err != nil {
			return results, fmt.Errorf("draft embedding %d: %w", i+1, err)
		}
		teacher, err := client.Embeddings(ctx, teacherModel, text)
		if err != nil {
			return results, fmt.Errorf("teacher embedding %d: %w", i+1, err)
		}

		mapped, err := MapToTeacher(w, draft, len(teacher))
		if err != nil {
			return results, fmt.Errorf("map sample %d: %w", i+1, err)
		}

		cosine, specMSE, specCosine := Compare(mapped, teacher)
		results = append(results, SampleResult{
			Text:       text,
			Cosine:     cosine,
			SpecMSE:    specMSE,
			SpecCosine: specCosine,
		})
	}
	return results, nil
}

// #endregion run
