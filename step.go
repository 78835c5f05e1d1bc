package poseidonfold

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/schedule"
)

// WalkFunc is called after every round with the cursor the round started at
// and the state it produced.
type WalkFunc func(r schedule.Round, at schedule.Cursor, state []fr.Element)

// Permute applies every round of the schedule. The result is the raw state
// after the final S-box layer; use Digest or MixLast to compress it.
func (p *Permutation) Permute(state []fr.Element) ([]fr.Element, error) {
	out, _, err := p.Step(state, p.schedule.Whole())
	return out, err
}

// Step applies exactly the rounds of seg and returns the new state together
// with the cursor the next segment must start at.
func (p *Permutation) Step(state []fr.Element, seg schedule.Segment) ([]fr.Element, schedule.Cursor, error) {
	return p.Walk(state, seg, nil)
}

// Walk is Step reporting every executed round to fn.
func (p *Permutation) Walk(state []fr.Element, seg schedule.Segment, fn WalkFunc) ([]fr.Element, schedule.Cursor, error) {
	if err := p.checkWidth(state); err != nil {
		return nil, schedule.Cursor{}, err
	}
	if err := p.schedule.Check(seg); err != nil {
		return nil, schedule.Cursor{}, err
	}
	cur := seg.Cursor()
	out := append([]fr.Element(nil), state...)
	for i := seg.Start; i < seg.End; i++ {
		r := p.schedule.Round(i)
		next, err := p.round(out, r.Kind, cur)
		if err != nil {
			return nil, schedule.Cursor{}, errors.Wrapf(err, "round %d (%s)", i, r.Kind)
		}
		out = next
		if fn != nil {
			fn(r, cur, out)
		}
		cur = p.schedule.Advance(cur)
	}
	return out, cur, nil
}

// round applies one round of the given kind, reading constants and sparse
// matrices at the cursor.
func (p *Permutation) round(state []fr.Element, kind schedule.Kind, at schedule.Cursor) ([]fr.Element, error) {
	switch kind {
	case schedule.Initial:
		return p.Ark(state, at.Offset)
	case schedule.Full, schedule.Middle:
		added, err := p.Ark(sigmaAll(state), at.Offset)
		if err != nil {
			return nil, err
		}
		if kind == schedule.Middle {
			return Mix(added, p.params.P)
		}
		return Mix(added, p.params.M)
	case schedule.Partial:
		if at.Offset >= len(p.params.C) {
			return nil, errors.Wrapf(ErrMalformed, "constant %d outside a table of %d", at.Offset, len(p.params.C))
		}
		out := append([]fr.Element(nil), state...)
		out[0] = Sigma(out[0])
		out[0].Add(&out[0], &p.params.C[at.Offset])
		return p.MixS(out, at.Partial)
	case schedule.Final:
		return sigmaAll(state), nil
	default:
		return nil, errors.Wrapf(schedule.ErrInvalidSchedule, "unknown round kind %d", int(kind))
	}
}

func sigmaAll(state []fr.Element) []fr.Element {
	out := make([]fr.Element, len(state))
	for i := range state {
		out[i] = Sigma(state[i])
	}
	return out
}

// Chain runs the segments in order, feeding each one the state produced by
// the previous one. Every segment must start where the previous one ended.
func (p *Permutation) Chain(state []fr.Element, segs []schedule.Segment) ([]fr.Element, error) {
	if len(segs) == 0 {
		return nil, errors.Wrap(schedule.ErrInvalidSegment, "empty chain")
	}
	log := logger.Logger().With().Str("component", "poseidonfold").Int("segments", len(segs)).Logger()

	out := state
	var cur schedule.Cursor
	for i, seg := range segs {
		if i > 0 && seg.Cursor() != cur {
			return nil, errors.Wrapf(schedule.ErrCursorMismatch, "segment %d starts at %s, previous ended at %s", i, seg.Cursor(), cur)
		}
		var err error
		out, cur, err = p.Step(out, seg)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		log.Debug().
			Int("segment", i).
			Int("start", seg.Start).
			Int("end", seg.End).
			Int("offset", seg.Offset).
			Int("partial", seg.Partial).
			Msg("segment applied")
	}
	return out, nil
}

// Digest compresses a permuted state to the single circomlib output.
func (p *Permutation) Digest(state []fr.Element) (fr.Element, error) {
	return MixLast(state, p.params.M, 0)
}
