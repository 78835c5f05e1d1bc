// Package poseidonfold implements the circomlib Poseidon permutation over the
// BN254 scalar field as an explicit round schedule that can be cut into
// segments and executed one segment at a time. Chaining the segments of any
// partition of the schedule gives the same state as the unsplit permutation,
// which lets every segment be proven as an independent step.
package poseidonfold

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

type (
	Strength = params.Strength
	Matrix   = params.Matrix
	Sparse   = params.Sparse
)

const (
	Standard     = params.Standard
	Strengthened = params.Strengthened
)

var (
	ErrUnsupported   = params.ErrUnsupported
	ErrMalformed     = params.ErrMalformed
	ErrWidthMismatch = errors.New("poseidonfold: state width mismatch")
)

// Permutation owns the tables of one (width, strength) configuration. It is
// immutable and safe for concurrent use.
type Permutation struct {
	params   *params.Parameters
	schedule schedule.Schedule
}

// New builds the permutation for the given width and strength.
func New(width int, strength Strength) (*Permutation, error) {
	p, err := params.New(width, strength)
	if err != nil {
		return nil, err
	}
	s, err := schedule.Build(p.Width, p.FullRounds, p.PartialRounds)
	if err != nil {
		return nil, err
	}
	if s.NumConstants() != len(p.C) {
		return nil, errors.Wrapf(ErrMalformed, "schedule reads %d constants, table has %d", s.NumConstants(), len(p.C))
	}
	return &Permutation{params: p, schedule: s}, nil
}

var defaultPermutation = sync.OnceValues(func() (*Permutation, error) {
	return New(3, Standard)
})

// Default returns the shared width-3 permutation with standard strength.
func Default() (*Permutation, error) { return defaultPermutation() }

func (p *Permutation) Width() int                  { return p.params.Width }
func (p *Permutation) Strength() Strength          { return p.params.Strength }
func (p *Permutation) Schedule() schedule.Schedule { return p.schedule }

// Constants returns a copy of the optimized constant table.
func (p *Permutation) Constants() []fr.Element {
	return append([]fr.Element(nil), p.params.C...)
}

// MDS returns a copy of the dense matrix of the full rounds.
func (p *Permutation) MDS() Matrix { return p.params.M.Clone() }

// MiddleMatrix returns a copy of the dense matrix of the middle round.
func (p *Permutation) MiddleMatrix() Matrix { return p.params.P.Clone() }

// SparseMatrix returns the sparse matrix of partial round r.
func (p *Permutation) SparseMatrix(r int) (Sparse, error) {
	if r < 0 || r >= len(p.params.S) {
		return Sparse{}, errors.Wrapf(ErrMalformed, "no sparse matrix for partial round %d of %d", r, len(p.params.S))
	}
	s := p.params.S[r]
	return Sparse{
		Row: append([]fr.Element(nil), s.Row...),
		Col: append([]fr.Element(nil), s.Col...),
	}, nil
}

// Ark adds the width constants starting at offset.
func (p *Permutation) Ark(state []fr.Element, offset int) ([]fr.Element, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, err
	}
	c := p.params.C
	if offset < 0 || offset+len(state) > len(c) {
		return nil, errors.Wrapf(ErrMalformed, "constants [%d, %d) outside a table of %d", offset, offset+len(state), len(c))
	}
	out := make([]fr.Element, len(state))
	for i := range state {
		out[i].Add(&state[i], &c[offset+i])
	}
	return out, nil
}

// Sigma returns x^5 computed as x^2, x^4 = (x^2)^2 and x^4·x.
func Sigma(x fr.Element) fr.Element {
	var x2, x4, x5 fr.Element
	x2.Mul(&x, &x)
	x4.Mul(&x2, &x2)
	x5.Mul(&x4, &x)
	return x5
}

// Mix returns new[i] = Σ_j state[j]·m[i][j].
func Mix(state []fr.Element, m Matrix) ([]fr.Element, error) {
	if err := checkMatrix(state, m); err != nil {
		return nil, err
	}
	out := make([]fr.Element, len(state))
	for i := range m {
		out[i] = dot(state, m[i])
	}
	return out, nil
}

// MixS applies the sparse matrix of partial round r.
func (p *Permutation) MixS(state []fr.Element, r int) ([]fr.Element, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, err
	}
	if r < 0 || r >= len(p.params.S) {
		return nil, errors.Wrapf(ErrMalformed, "no sparse matrix for partial round %d of %d", r, len(p.params.S))
	}
	s := p.params.S[r]
	out := make([]fr.Element, len(state))
	out[0] = dot(state, s.Row)
	for k := 1; k < len(state); k++ {
		var term fr.Element
		term.Mul(&s.Col[k-1], &state[0])
		out[k].Add(&state[k], &term)
	}
	return out, nil
}

// MixLast returns only row out of the product of m and state.
func MixLast(state []fr.Element, m Matrix, out int) (fr.Element, error) {
	if err := checkMatrix(state, m); err != nil {
		return fr.Element{}, err
	}
	if out < 0 || out >= len(m) {
		return fr.Element{}, errors.Wrapf(ErrMalformed, "output row %d of a %d-row matrix", out, len(m))
	}
	return dot(state, m[out]), nil
}

func dot(a, b []fr.Element) fr.Element {
	var sum fr.Element
	for j := range a {
		var prod fr.Element
		prod.Mul(&a[j], &b[j])
		sum.Add(&sum, &prod)
	}
	return sum
}

func (p *Permutation) checkWidth(state []fr.Element) error {
	if len(state) != p.params.Width {
		return errors.Wrapf(ErrWidthMismatch, "got %d elements, want %d", len(state), p.params.Width)
	}
	return nil
}

func checkMatrix(state []fr.Element, m Matrix) error {
	if len(m) != len(state) {
		return errors.Wrapf(ErrWidthMismatch, "%d-row matrix applied to %d elements", len(m), len(state))
	}
	for i, row := range m {
		if len(row) != len(state) {
			return errors.Wrapf(ErrMalformed, "matrix row %d has %d entries, want %d", i, len(row), len(state))
		}
	}
	return nil
}
