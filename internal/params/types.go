package params

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Strength selects the security margin of a parameter set.
type Strength int

const (
	Standard Strength = iota
	Strengthened
)

func (s Strength) String() string {
	switch s {
	case Standard:
		return "standard"
	case Strengthened:
		return "strengthened"
	default:
		return "unknown"
	}
}

// Matrix is a square matrix of field elements. Applying it to a state
// produces new[i] = Σ_j state[j]·m[i][j].
type Matrix [][]fr.Element

// Sparse is the factorized matrix of one partial round: a dense first row and
// an identity block extended by a first column.
//
//	new[0] = Σ_j Row[j]·s[j]
//	new[k] = s[k] + Col[k-1]·s[0]   (k ≥ 1)
type Sparse struct {
	Row []fr.Element
	Col []fr.Element
}

// Parameters bundles all the tables needed by the permutation. A Parameters
// value is never modified after New returns it.
type Parameters struct {
	Width         int
	Strength      Strength
	FullRounds    int
	PartialRounds int
	Alpha         uint64

	// C is the optimized constant table, t*RF + RP entries.
	C []fr.Element
	// M is the dense matrix of the full rounds.
	M Matrix
	// P is the dense matrix of the middle round, M with the dense remainder
	// of every partial round folded in.
	P Matrix
	// S holds one sparse matrix per partial round, in execution order.
	S []Sparse
}

// NumConstants is the expected length of C.
func (p *Parameters) NumConstants() int {
	return p.Width*p.FullRounds + p.PartialRounds
}
