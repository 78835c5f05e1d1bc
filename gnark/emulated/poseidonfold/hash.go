// Package poseidonfold runs the segmented Poseidon permutation over emulated
// BN254 scalars, for circuits whose native field is not BN254's.
package poseidonfold

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

var ErrWidthMismatch = errors.New("poseidonfold: state width mismatch")

// Permutation is the emulated gadget of one configuration.
type Permutation struct {
	field    *emulated.Field[FrParams]
	params   *params.Parameters
	schedule schedule.Schedule
}

func NewPermutation(api frontend.API, width int, strength params.Strength) (*Permutation, error) {
	p, err := nativeParams(width, strength)
	if err != nil {
		return nil, err
	}
	s, err := schedule.Build(p.Width, p.FullRounds, p.PartialRounds)
	if err != nil {
		return nil, err
	}
	field, err := emulated.NewField[FrParams](api)
	if err != nil {
		return nil, err
	}
	return &Permutation{field: field, params: p, schedule: s}, nil
}

func (p *Permutation) Field() *emulated.Field[FrParams] { return p.field }
func (p *Permutation) Schedule() schedule.Schedule     { return p.schedule }

// Permute runs the whole schedule.
func (p *Permutation) Permute(state []*Element) ([]*Element, error) {
	out, _, err := p.Step(state, p.schedule.Whole())
	return out, err
}

// Step runs the rounds of seg and returns the state with the next cursor.
func (p *Permutation) Step(state []*Element, seg schedule.Segment) ([]*Element, schedule.Cursor, error) {
	if len(state) != p.params.Width {
		return nil, schedule.Cursor{}, errors.Wrapf(ErrWidthMismatch, "got %d elements, want %d", len(state), p.params.Width)
	}
	if err := p.schedule.Check(seg); err != nil {
		return nil, schedule.Cursor{}, err
	}
	cur := seg.Cursor()
	out := append([]*Element(nil), state...)
	for i := seg.Start; i < seg.End; i++ {
		kind := p.schedule.Round(i).Kind
		next, err := p.round(out, kind, cur)
		if err != nil {
			return nil, schedule.Cursor{}, errors.Wrapf(err, "round %d (%s)", i, kind)
		}
		out = next
		cur = p.schedule.Advance(cur)
	}
	return out, cur, nil
}

func (p *Permutation) round(state []*Element, kind schedule.Kind, at schedule.Cursor) ([]*Element, error) {
	switch kind {
	case schedule.Initial:
		return p.addConstants(state, at.Offset)
	case schedule.Full, schedule.Middle:
		added, err := p.addConstants(p.fullSBox(state), at.Offset)
		if err != nil {
			return nil, err
		}
		if kind == schedule.Middle {
			return p.mix(added, p.params.P), nil
		}
		return p.mix(added, p.params.M), nil
	case schedule.Partial:
		if at.Offset < 0 || at.Offset >= len(p.params.C) {
			return nil, errors.Wrapf(params.ErrMalformed, "constant %d outside a table of %d", at.Offset, len(p.params.C))
		}
		out := append([]*Element(nil), state...)
		c := constElement(p.field, p.params.C[at.Offset])
		out[0] = p.field.Add(p.sigma(out[0]), c)
		return p.sparseMatMul(out, at.Partial)
	case schedule.Final:
		return p.fullSBox(state), nil
	default:
		return nil, errors.Wrapf(schedule.ErrInvalidSchedule, "unknown round kind %d", int(kind))
	}
}

// Digest compresses a permuted state to the circomlib output.
func (p *Permutation) Digest(state []*Element) *Element {
	return p.row(state, p.params.M[0])
}

// Hash is the emulated counterpart of the native sponge hash with one
// compressed output.
func Hash(api frontend.API, inputs ...Element) (Element, error) {
	var zero Element
	if len(inputs) < 1 {
		return zero, errors.New("poseidonfold: need at least 1 input")
	}
	perm, err := NewPermutation(api, 3, params.Standard)
	if err != nil {
		return zero, err
	}
	f := perm.field
	rate := perm.params.Width - 1

	state := make([]*Element, perm.params.Width)
	for i := range state {
		state[i] = f.Zero()
	}
	for start := 0; start < len(inputs); start += rate {
		if start > 0 {
			state = perm.mix(state, perm.params.M)
		}
		for i, in := range inputs[start:min(start+rate, len(inputs))] {
			state[1+i] = f.Add(state[1+i], &in)
		}
		if state, err = perm.Permute(state); err != nil {
			return zero, err
		}
	}
	// Ensure canonical output.
	out := f.Reduce(perm.Digest(state))
	return *out, nil
}

func (p *Permutation) addConstants(state []*Element, offset int) ([]*Element, error) {
	c := p.params.C
	if offset < 0 || offset+len(state) > len(c) {
		return nil, errors.Wrapf(params.ErrMalformed, "constants [%d, %d) outside a table of %d", offset, offset+len(state), len(c))
	}
	out := make([]*Element, len(state))
	for i := range state {
		out[i] = p.field.Add(state[i], constElement(p.field, c[offset+i]))
	}
	return out, nil
}

func (p *Permutation) mix(state []*Element, m params.Matrix) []*Element {
	out := make([]*Element, len(state))
	for i := range m {
		out[i] = p.row(state, m[i])
	}
	return out
}

func (p *Permutation) row(state []*Element, coeffs []fr.Element) *Element {
	sum := p.field.Zero()
	for j := range state {
		sum = p.field.Add(sum, p.field.Mul(constElement(p.field, coeffs[j]), state[j]))
	}
	return sum
}

func (p *Permutation) sparseMatMul(state []*Element, r int) ([]*Element, error) {
	if r < 0 || r >= len(p.params.S) {
		return nil, errors.Wrapf(params.ErrMalformed, "no sparse matrix for partial round %d of %d", r, len(p.params.S))
	}
	s := p.params.S[r]
	out := make([]*Element, len(state))
	out[0] = p.row(state, s.Row)
	for k := 1; k < len(state); k++ {
		term := p.field.Mul(constElement(p.field, s.Col[k-1]), state[0])
		out[k] = p.field.Add(state[k], term)
	}
	return out, nil
}

func (p *Permutation) fullSBox(state []*Element) []*Element {
	out := make([]*Element, len(state))
	for i := range state {
		out[i] = p.sigma(state[i])
	}
	return out
}

func (p *Permutation) sigma(x *Element) *Element {
	x2 := p.field.Mul(x, x)
	x4 := p.field.Mul(x2, x2)
	return p.field.Mul(x4, x)
}
