package params

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// Factorize splits the dense layer of every partial round into a sparse
// matrix, moving the dense remainder backwards until it lands in the middle
// round. Applying the returned P followed by S[0], ..., S[rp-1] is the same
// linear map as applying m rp+1 times.
func Factorize(m Matrix, partialRounds int) (Matrix, []Sparse, error) {
	p, sparse, _, err := factorize(m, partialRounds)
	return p, sparse, err
}

// factorize additionally returns, for every partial round r, the dense matrix
// that S[r] replaces once the remainder of round r+1 is folded in.
func factorize(m Matrix, rp int) (Matrix, []Sparse, []Matrix, error) {
	t := len(m)
	if t < 2 {
		return nil, nil, nil, errors.Wrapf(ErrMalformed, "cannot factorize a %dx%d matrix", t, t)
	}
	sparse := make([]Sparse, rp)
	dense := make([]Matrix, rp)
	acc := m.Clone()
	for r := rp - 1; r >= 0; r-- {
		dense[r] = acc
		hat := acc.minor()
		hatInv, err := hat.inverse()
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "partial round %d", r)
		}

		row := make([]fr.Element, t)
		row[0] = acc[0][0]
		for j := 0; j < t-1; j++ {
			var sum fr.Element
			for k := 0; k < t-1; k++ {
				var prod fr.Element
				prod.Mul(&acc[0][k+1], &hatInv[k][j])
				sum.Add(&sum, &prod)
			}
			row[j+1] = sum
		}
		col := make([]fr.Element, t-1)
		for k := range col {
			col[k] = acc[k+1][0]
		}
		sparse[r] = Sparse{Row: row, Col: col}

		// blockdiag(1, hat) commutes with the partial S-box, so it moves
		// into the previous round's matrix.
		acc = hat.embed().Mul(m)
	}
	return acc, sparse, dense, nil
}

// Identity returns the t×t identity matrix.
func Identity(t int) Matrix {
	out := zeroMatrix(t)
	for i := range out {
		out[i][i].SetOne()
	}
	return out
}

// Mul returns the matrix product a·b.
func (a Matrix) Mul(b Matrix) Matrix {
	t := len(a)
	out := zeroMatrix(t)
	for i := 0; i < t; i++ {
		for j := 0; j < t; j++ {
			var sum fr.Element
			for k := 0; k < t; k++ {
				var prod fr.Element
				prod.Mul(&a[i][k], &b[k][j])
				sum.Add(&sum, &prod)
			}
			out[i][j] = sum
		}
	}
	return out
}

// Equal reports whether both matrices hold the same entries.
func (a Matrix) Equal(b Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if !a[i][j].Equal(&b[i][j]) {
				return false
			}
		}
	}
	return true
}

// Dense expands a sparse matrix back to its t×t form.
func (s Sparse) Dense() Matrix {
	t := len(s.Row)
	out := Identity(t)
	copy(out[0], s.Row)
	for k := 1; k < t; k++ {
		out[k][0] = s.Col[k-1]
	}
	return out
}

// Clone returns a deep copy.
func (a Matrix) Clone() Matrix {
	out := make(Matrix, len(a))
	for i := range a {
		out[i] = append([]fr.Element(nil), a[i]...)
	}
	return out
}

// minor drops the first row and column.
func (a Matrix) minor() Matrix {
	t := len(a) - 1
	out := zeroMatrix(t)
	for i := 0; i < t; i++ {
		copy(out[i], a[i+1][1:])
	}
	return out
}

// embed returns blockdiag(1, a).
func (a Matrix) embed() Matrix {
	t := len(a) + 1
	out := zeroMatrix(t)
	out[0][0].SetOne()
	for i := range a {
		copy(out[i+1][1:], a[i])
	}
	return out
}

// inverse uses Gauss-Jordan elimination.
func (a Matrix) inverse() (Matrix, error) {
	t := len(a)
	work := a.Clone()
	inv := Identity(t)
	for col := 0; col < t; col++ {
		pivot := -1
		for row := col; row < t; row++ {
			if !work[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, errors.Wrap(ErrMalformed, "singular matrix")
		}
		work[col], work[pivot] = work[pivot], work[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		var scale fr.Element
		scale.Inverse(&work[col][col])
		for j := 0; j < t; j++ {
			work[col][j].Mul(&work[col][j], &scale)
			inv[col][j].Mul(&inv[col][j], &scale)
		}
		for row := 0; row < t; row++ {
			if row == col || work[row][col].IsZero() {
				continue
			}
			factor := work[row][col]
			for j := 0; j < t; j++ {
				var tmp fr.Element
				tmp.Mul(&factor, &work[col][j])
				work[row][j].Sub(&work[row][j], &tmp)
				tmp.Mul(&factor, &inv[col][j])
				inv[row][j].Sub(&inv[row][j], &tmp)
			}
		}
	}
	return inv, nil
}

func zeroMatrix(t int) Matrix {
	out := make(Matrix, t)
	for i := range out {
		out[i] = make([]fr.Element, t)
	}
	return out
}
