package spectral

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestL2Normalize(t *testing.T) {
	out := L2Normalize([]float64{3, 4})
	if math.Abs(out[0]-0.6) > 1e-15 || math.Abs(out[1]-0.8) > 1e-15 {
		t.Fatalf("normalized = %v, want [0.6 0.8]", out)
	}

	zero := L2Normalize([]float64{0, 0, 0})
	for i, v := range zero {
		if v != 0 {
			t.Fatalf("zero vector changed at %d: %v", i, v)
		}
	}
}

func TestCosine(t *testing.T) {
	if got := Cosine([]float64{1, 0}, []float64{2, 0}); math.Abs(got-1) > 1e-15 {
		t.Fatalf("parallel cosine = %v, want 1", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{0, 5}); math.Abs(got) > 1e-15 {
		t.Fatalf("orthogonal cosine = %v, want 0", got)
	}
	if got := Cosine([]float64{1, 1}, []float64{-1, -1}); math.Abs(got+1) > 1e-15 {
		t.Fatalf("antiparallel cosine = %v, want -1", got)
	}
}

func TestMagnitudeSpectrumConstantSignal(t *testing.T) {
	// A constant signal concentrates all energy in the DC bin.
	mags := MagnitudeSpectrum([]float64{1, 1, 1, 1})
	if len(mags) != 3 {
		t.Fatalf("rfft of length-4 input has %d bins, want 3", len(mags))
	}
	if math.Abs(mags[0]-4) > 1e-12 {
		t.Fatalf("DC magnitude = %v, want 4", mags[0])
	}
	for i, m := range mags[1:] {
		if math.Abs(m) > 1e-12 {
			t.Fatalf("bin %d magnitude = %v, want 0", i+1, m)
		}
	}
}

func TestPadToSame(t *testing.T) {
	a, b := PadToSame([]float64{1, 2}, []float64{3, 4, 5})
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("padded lengths = %d/%d, want 3/3", len(a), len(b))
	}
	if a[2] != 0 {
		t.Fatalf("pad value = %v, want 0", a[2])
	}

	c, d := PadToSame([]float64{1}, []float64{2})
	if len(c) != 1 || len(d) != 1 {
		t.Fatalf("equal-length inputs were resized: %d/%d", len(c), len(d))
	}
}

func TestSpectralMSE(t *testing.T) {
	if got := SpectralMSE([]float64{1, 2}, []float64{1, 2}); got != 0 {
		t.Fatalf("identical spectra MSE = %v, want 0", got)
	}
	if got := SpectralMSE([]float64{0, 0}, []float64{2, 2}); math.Abs(got-4) > 1e-15 {
		t.Fatalf("MSE = %v, want 4", got)
	}
}

func TestCompareIdenticalVectors(t *testing.T) {
	v := []float64{0.3, -1.2, 2.5, 0.7, -0.1, 1.1, 0.0, -2.2}
	cosine, specMSE, specCosine := Compare(v, v)

	if math.Abs(cosine-1) > 1e-12 {
		t.Fatalf("cosine = %v, want 1", cosine)
	}
	if specMSE > 1e-12 {
		t.Fatalf("spectral MSE = %v, want ~0", specMSE)
	}
	if math.Abs(specCosine-1) > 1e-12 {
		t.Fatalf("spectral cosine = %v, want 1", specCosine)
	}
}

func TestMapToTeacherForward(t *testing.T) {
	w := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})

	out, err := MapToTeacher(w, []float64{2, 3}, 3)
	if err != nil {
		t.Fatalf("MapToTeacher: %v", err)
	}
	want := []float64{2, 3, 5}
	if len(out) != 3 {
		t.Fatalf("mapped dim = %d, want 3", len(out))
	}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-15 {
			t.Fatalf("mapped = %v, want %v", out, want)
		}
	}
}

func TestMapToTeacherTransposed(t *testing.T) {
	w := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})

	// Draft dim matches the row count, so only the transposed orientation fits.
	out, err := MapToTeacher(w, []float64{1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("MapToTeacher: %v", err)
	}
	want := []float64{4, 5}
	if len(out) != 2 {
		t.Fatalf("mapped dim = %d, want 2", len(out))
	}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-15 {
			t.Fatalf("mapped = %v, want %v", out, want)
		}
	}
}

func TestMapToTeacherDimensionMismatch(t *testing.T) {
	w := mat.NewDense(3, 2, nil)
	if _, err := MapToTeacher(w, []float64{1, 2, 3, 4}, 0); err == nil {
		t.Fatal("expected an error for an inapplicable matrix")
	}
}
