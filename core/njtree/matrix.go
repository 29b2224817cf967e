// core/njtree/matrix.go
package njtree

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyMatrix      = errors.New("distance matrix is empty")
	ErrNotSquare        = errors.New("distance matrix length is not a perfect square")
	ErrNegativeDistance = errors.New("negative distance")
	ErrAsymmetric       = errors.New("distance matrix is not symmetric")
	ErrNotFinite        = errors.New("distance is not finite")
)

// symmetryTol is the relative tolerance for mat[i][j] vs mat[j][i].
const symmetryTol = 1e-9

// Matrix is a dense n×n distance matrix stored row-major in one buffer.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix wraps a flattened row-major matrix of length n². The slice is
// copied. n is floor(sqrt(len(flat))) and must square back to len(flat).
func NewMatrix(flat []float64) (*Matrix, error) {
	if len(flat) == 0 {
		return nil, ErrEmptyMatrix
	}
	n := int(math.Sqrt(float64(len(flat))))
	if n*n != len(flat) {
		return nil, errors.Wrapf(ErrNotSquare, "length %d", len(flat))
	}
	return &Matrix{n: n, data: append([]float64(nil), flat...)}, nil
}

// FromSymmetric copies a gonum symmetric matrix.
func FromSymmetric(s mat.Symmetric) (*Matrix, error) {
	n := s.SymmetricDim()
	if n == 0 {
		return nil, ErrEmptyMatrix
	}
	m := &Matrix{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := s.At(i, j)
			m.data[m.index(i, j)] = v
			m.data[m.index(j, i)] = v
		}
	}
	return m, nil
}

func (m *Matrix) index(i, j int) int { return i*m.n + j }

// Len is the number of items (rows).
func (m *Matrix) Len() int { return m.n }

// At returns mat[i][j].
func (m *Matrix) At(i, j int) float64 { return m.data[m.index(i, j)] }

func (m *Matrix) set(i, j int, v float64) { m.data[m.index(i, j)] = v }

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{n: m.n, data: append([]float64(nil), m.data...)}
}

// Flat returns a copy of the row-major buffer.
func (m *Matrix) Flat() []float64 { return append([]float64(nil), m.data...) }

// Validate checks that every entry is finite, off-diagonal entries are
// non-negative, and the matrix is symmetric. The diagonal is ignored.
func (m *Matrix) Validate() error {
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.Wrapf(ErrNotFinite, "at (%d,%d)", i, j)
			}
			if i == j {
				continue
			}
			if v < 0 {
				return errors.Wrapf(ErrNegativeDistance, "%g at (%d,%d)", v, i, j)
			}
			if j > i {
				w := m.At(j, i)
				scale := math.Max(1, math.Max(math.Abs(v), math.Abs(w)))
				if math.Abs(v-w) > symmetryTol*scale {
					return errors.Wrapf(ErrAsymmetric, "(%d,%d)=%g vs (%d,%d)=%g", i, j, v, j, i, w)
				}
			}
		}
	}
	return nil
}
