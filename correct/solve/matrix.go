// Package solve is the correction solver (component C4): assembles the
// square correction matrix indexed by measured tracer (M,m) offsets, solves
// it, and post-processes the corrected vector (§4.4).
package solve

// Matrix is a square, row-major correction matrix.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix returns an n×n zero Matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]float64, n*n)}
}

// N returns the matrix dimension.
func (m *Matrix) N() int { return m.n }

// At returns A[row][col].
func (m *Matrix) At(row, col int) float64 {
	return m.data[row*m.n+col]
}

// Set assigns A[row][col] = v.
func (m *Matrix) Set(row, col int, v float64) {
	m.data[row*m.n+col] = v
}

// Add accumulates A[row][col] += v.
func (m *Matrix) Add(row, col int, v float64) {
	m.data[row*m.n+col] += v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])
	return out
}
