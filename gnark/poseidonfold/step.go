package poseidonfold

import (
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/internal/params"
	"github.com/vocdoni/poseidonfold/schedule"
)

// Permute constrains every round of the schedule and returns the raw state
// after the final S-box layer.
func (p *Permutation) Permute(state []frontend.Variable) ([]frontend.Variable, error) {
	out, _, err := p.Step(state, p.schedule.Whole())
	return out, err
}

// Step constrains exactly the rounds of seg and returns the new state with
// the cursor the next segment starts at.
func (p *Permutation) Step(state []frontend.Variable, seg schedule.Segment) ([]frontend.Variable, schedule.Cursor, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, schedule.Cursor{}, err
	}
	if err := p.schedule.Check(seg); err != nil {
		return nil, schedule.Cursor{}, err
	}
	cur := seg.Cursor()
	out := append([]frontend.Variable(nil), state...)
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

func (p *Permutation) round(state []frontend.Variable, kind schedule.Kind, at schedule.Cursor) ([]frontend.Variable, error) {
	switch kind {
	case schedule.Initial:
		return p.Ark(state, at.Offset)
	case schedule.Full, schedule.Middle:
		added, err := p.Ark(p.sigmaAll(state), at.Offset)
		if err != nil {
			return nil, err
		}
		if kind == schedule.Middle {
			return p.Mix(added, p.params.P)
		}
		return p.Mix(added, p.params.M)
	case schedule.Partial:
		if at.Offset >= len(p.params.C) {
			return nil, errors.Wrapf(params.ErrMalformed, "constant %d outside a table of %d", at.Offset, len(p.params.C))
		}
		out := append([]frontend.Variable(nil), state...)
		out[0] = p.api.Add(p.Sigma(out[0]), p.params.C[at.Offset])
		return p.MixS(out, at.Partial)
	case schedule.Final:
		return p.sigmaAll(state), nil
	default:
		return nil, errors.Wrapf(schedule.ErrInvalidSchedule, "unknown round kind %d", int(kind))
	}
}

func (p *Permutation) sigmaAll(state []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, len(state))
	for i := range state {
		out[i] = p.Sigma(state[i])
	}
	return out
}
