package solve

import (
	"fmt"

	"github.com/bebop-bio/isocor/chem"
)

// Triangularize reduces A to lower-triangular form by right-to-left
// elimination (§4.4.2, purity case): for k from n-1 down to 1, every row
// above k with a nonzero entry in column k is reduced against row k. b is
// updated in lockstep. Mutates both A and b in place.
func Triangularize(A *Matrix, b []float64) error {
	n := A.N()
	for k := n - 1; k >= 1; k-- {
		pivot := A.At(k, k)
		if pivot == 0 {
			return fmt.Errorf("%w: column %d", chem.ErrZeroPivot, k)
		}
		for r := 0; r < k; r++ {
			factor := A.At(r, k)
			if factor == 0 {
				continue
			}
			ratio := factor / pivot
			for c := 0; c < n; c++ {
				A.Set(r, c, A.At(r, c)-ratio*A.At(k, c))
			}
			A.Set(r, k, 0) // eliminated exactly, without rounding residue

			b[r] -= ratio * b[k]
		}
	}
	return nil
}

// ForwardSubstitute solves A·x = b by forward substitution (§4.4.2),
// assuming A is lower-triangular (true without purity by construction;
// true with purity after Triangularize). Negative results are clipped to
// zero. A zero diagonal entry is fatal.
func ForwardSubstitute(A *Matrix, b []float64) ([]float64, error) {
	n := A.N()
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += A.At(i, j) * x[j]
		}
		pivot := A.At(i, i)
		if pivot == 0 {
			return nil, fmt.Errorf("%w: row %d", chem.ErrZeroPivot, i)
		}
		v := (b[i] - sum) / pivot
		if v < 0 {
			v = 0
		}
		x[i] = v
	}
	return x, nil
}

// Solve runs §4.4.2 in full: triangularization (only when hasPurity) then
// forward substitution.
func Solve(A *Matrix, b []float64, hasPurity bool) ([]float64, error) {
	if hasPurity {
		if err := Triangularize(A, b); err != nil {
			return nil, err
		}
	}
	return ForwardSubstitute(A, b)
}
