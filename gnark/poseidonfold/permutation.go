// Package poseidonfold emits the constraints of the segmented Poseidon
// permutation through frontend.API. Every round reads its constants and
// sparse matrix at the segment cursor, the same way the native engine does.
package poseidonfold

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

var ErrWidthMismatch = errors.New("poseidonfold: state width mismatch")

// tables of the default configuration, shared by every circuit.
var defaultTables = sync.OnceValues(func() (*params.Parameters, error) {
	return params.New(3, params.Standard)
})

func loadParams(width int, strength params.Strength) (*params.Parameters, error) {
	if width == 3 && strength == params.Standard {
		return defaultTables()
	}
	return params.New(width, strength)
}

// Permutation is the circuit gadget of one (width, strength) configuration.
type Permutation struct {
	api      frontend.API
	params   *params.Parameters
	schedule schedule.Schedule
}

// NewPermutation builds the gadget. The tables are the native ones.
func NewPermutation(api frontend.API, width int, strength params.Strength) (*Permutation, error) {
	p, err := loadParams(width, strength)
	if err != nil {
		return nil, err
	}
	s, err := schedule.Build(p.Width, p.FullRounds, p.PartialRounds)
	if err != nil {
		return nil, err
	}
	return &Permutation{api: api, params: p, schedule: s}, nil
}

func (p *Permutation) Width() int                  { return p.params.Width }
func (p *Permutation) Schedule() schedule.Schedule { return p.schedule }

// MDS is the dense matrix of the full rounds. It must not be modified.
func (p *Permutation) MDS() params.Matrix { return p.params.M }

// Ark adds the width constants starting at offset.
func (p *Permutation) Ark(state []frontend.Variable, offset int) ([]frontend.Variable, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, err
	}
	c := p.params.C
	if offset < 0 || offset+len(state) > len(c) {
		return nil, errors.Wrapf(params.ErrMalformed, "constants [%d, %d) outside a table of %d", offset, offset+len(state), len(c))
	}
	out := make([]frontend.Variable, len(state))
	for i := range state {
		out[i] = p.api.Add(state[i], c[offset+i])
	}
	return out, nil
}

// Sigma returns x^5 as three multiplication constraints.
func (p *Permutation) Sigma(x frontend.Variable) frontend.Variable {
	x2 := p.api.Mul(x, x)
	x4 := p.api.Mul(x2, x2)
	return p.api.Mul(x4, x)
}

// Mix returns new[i] = Σ_j state[j]·m[i][j]. Products by constants are
// linear and add no constraint.
func (p *Permutation) Mix(state []frontend.Variable, m params.Matrix) ([]frontend.Variable, error) {
	if err := checkMatrix(state, m); err != nil {
		return nil, err
	}
	out := make([]frontend.Variable, len(state))
	for i := range m {
		out[i] = p.row(state, m[i])
	}
	return out, nil
}

// MixS applies the sparse matrix of partial round r.
func (p *Permutation) MixS(state []frontend.Variable, r int) ([]frontend.Variable, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, err
	}
	if r < 0 || r >= len(p.params.S) {
		return nil, errors.Wrapf(params.ErrMalformed, "no sparse matrix for partial round %d of %d", r, len(p.params.S))
	}
	s := p.params.S[r]
	out := make([]frontend.Variable, len(state))
	out[0] = p.row(state, s.Row)
	for k := 1; k < len(state); k++ {
		out[k] = p.api.Add(state[k], p.api.Mul(state[0], s.Col[k-1]))
	}
	return out, nil
}

// MixLast returns only row out of the product of m and state.
func (p *Permutation) MixLast(state []frontend.Variable, m params.Matrix, out int) (frontend.Variable, error) {
	if err := checkMatrix(state, m); err != nil {
		return nil, err
	}
	if out < 0 || out >= len(m) {
		return nil, errors.Wrapf(params.ErrMalformed, "output row %d of a %d-row matrix", out, len(m))
	}
	return p.row(state, m[out]), nil
}

// Digest compresses a permuted state to the single circomlib output.
func (p *Permutation) Digest(state []frontend.Variable) (frontend.Variable, error) {
	return p.MixLast(state, p.params.M, 0)
}

func (p *Permutation) row(state []frontend.Variable, coeffs []fr.Element) frontend.Variable {
	sum := p.api.Mul(state[0], coeffs[0])
	for j := 1; j < len(state); j++ {
		sum = p.api.Add(sum, p.api.Mul(state[j], coeffs[j]))
	}
	return sum
}

func (p *Permutation) checkWidth(state []frontend.Variable) error {
	if len(state) != p.params.Width {
		return errors.Wrapf(ErrWidthMismatch, "got %d variables, want %d", len(state), p.params.Width)
	}
	return nil
}

func checkMatrix(state []frontend.Variable, m params.Matrix) error {
	if len(m) != len(state) {
		return errors.Wrapf(ErrWidthMismatch, "%d-row matrix applied to %d variables", len(m), len(state))
	}
	for i, row := range m {
		if len(row) != len(state) {
			return errors.Wrapf(params.ErrMalformed, "matrix row %d has %d entries, want %d", i, len(row), len(state))
		}
	}
	return nil
}
