package spectral

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// #region load

// LoadAlignmentMatrix reads the draft-to-teacher alignment matrix W from a
// NumPy .npy file. The matrix must be 2D; orientation is resolved at map
// time.
func LoadAlignmentMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alignment matrix %s: %w", path, err)
	}
	defer f.Close()

	var w mat.Dense
	if err := npyio.Read(f, &w); err != nil {
		return nil, fmt.Errorf("parse alignment matrix %s: %w", path, err)
	}
	return &w, nil
}

// #endregion load

// #region map

// MapToTeacher applies W to a draft embedding, trying both W·d and Wᵀ·d and
// keeping the candidate whose output dimension is closest to teacherDimHint.
// A hint of 0 keeps the first applicable orientation.
func MapToTeacher(w *mat.Dense, draft []float64, teacherDimHint int) ([]float64, error) {
	rows, cols := w.Dims()
	d := mat.NewVecDense(len(draft), draft)

	type candidate struct {
		dim int
		out *mat.VecDense
	}
	var candidates []candidate

	if cols == len(draft) {
		out := mat.NewVecDense(rows, nil)
		out.MulVec(w, d)
		candidates = append(candidates, candidate{dim: rows, out: out})
	}
	if rows == len(draft) {
		out := mat.NewVecDense(cols, nil)
		out.MulVec(w.T(), d)
		candidates = append(candidates, candidate{dim: cols, out: out})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("cannot apply W (%dx%d) to draft of dim %d", rows, cols, len(draft))
	}

	best := candidates[0]
	if teacherDimHint > 0 {
		for _, c := range candidates[1:] {
			if abs(c.dim-teacherDimHint) < abs(best.dim-teacherDimHint) {
				best = c
			}
		}
	}

	out := make([]float64, best.dim)
	copy(out, best.out.RawVector().Data)
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// #endregion map
