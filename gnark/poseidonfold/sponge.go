package poseidonfold

import (
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/iopattern"
)

var ErrNoSession = errors.New("poseidonfold: no sponge session in progress")

// Mode selects how squeezed elements are read, as in the native sponge.
type Mode int

const (
	Compressed Mode = iota
	Rate
)

// Sponge is the in-circuit sponge. It follows the native one call for call,
// so a pattern accepted natively is accepted here with the same outputs.
type Sponge struct {
	perm *Permutation
	mode Mode

	tracker *iopattern.Tracker
	err     error

	state   []frontend.Variable
	raw     bool
	dirty   bool
	fresh   bool
	absorb  int
	squeeze int
}

func NewSponge(perm *Permutation, mode Mode) *Sponge {
	return &Sponge{perm: perm, mode: mode}
}

func (s *Sponge) Start(pattern iopattern.Pattern) error {
	if s.tracker != nil && s.err == nil {
		return errors.Wrap(iopattern.ErrPatternViolation, "previous session not finished")
	}
	tracker, err := iopattern.NewTracker(pattern)
	if err != nil {
		return err
	}
	w := s.perm.Width()
	s.tracker = tracker
	s.err = nil
	s.state = make([]frontend.Variable, w)
	for i := range s.state {
		s.state[i] = 0
	}
	s.raw = false
	s.dirty = false
	s.fresh = false
	s.absorb = 1
	s.squeeze = w
	return nil
}

func (s *Sponge) Absorb(k int, elems []frontend.Variable) error {
	if err := s.check(); err != nil {
		return err
	}
	if len(elems) != k {
		return s.fail(errors.Wrapf(iopattern.ErrPatternViolation, "absorb of %d elements given %d", k, len(elems)))
	}
	if err := s.tracker.Absorb(k); err != nil {
		return s.fail(err)
	}
	w := s.perm.Width()
	for _, e := range elems {
		if s.absorb == w {
			if err := s.permute(); err != nil {
				return s.fail(err)
			}
		}
		if err := s.materialize(); err != nil {
			return s.fail(err)
		}
		s.state[s.absorb] = s.perm.api.Add(s.state[s.absorb], e)
		s.absorb++
		s.dirty = true
	}
	return nil
}

func (s *Sponge) Squeeze(m int) ([]frontend.Variable, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := s.tracker.Squeeze(m); err != nil {
		return nil, s.fail(err)
	}
	w := s.perm.Width()
	out := make([]frontend.Variable, m)
	for i := range out {
		if s.dirty || s.squeeze >= w {
			if err := s.permute(); err != nil {
				return nil, s.fail(err)
			}
		}
		v, err := s.read(m == 1 && s.fresh)
		if err != nil {
			return nil, s.fail(err)
		}
		out[i] = v
		s.squeeze++
		s.fresh = false
	}
	return out, nil
}

func (s *Sponge) Finish() error {
	if err := s.check(); err != nil {
		return err
	}
	err := s.tracker.Finish()
	s.tracker = nil
	s.state = nil
	if err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *Sponge) check() error {
	if s.err != nil {
		return errors.Wrap(iopattern.ErrSessionAborted, s.err.Error())
	}
	if s.tracker == nil {
		return ErrNoSession
	}
	return nil
}

func (s *Sponge) fail(err error) error {
	s.err = err
	return err
}

func (s *Sponge) permute() error {
	if err := s.materialize(); err != nil {
		return err
	}
	out, err := s.perm.Permute(s.state)
	if err != nil {
		return err
	}
	s.state = out
	s.raw = true
	s.dirty = false
	s.fresh = true
	s.absorb = 1
	s.squeeze = 1
	return nil
}

func (s *Sponge) materialize() error {
	if !s.raw {
		return nil
	}
	mixed, err := s.perm.Mix(s.state, s.perm.params.M)
	if err != nil {
		return err
	}
	s.state = mixed
	s.raw = false
	return nil
}

func (s *Sponge) read(single bool) (frontend.Variable, error) {
	if s.mode == Compressed && single && s.raw {
		return s.perm.Digest(s.state)
	}
	if err := s.materialize(); err != nil {
		return nil, err
	}
	return s.state[s.squeeze], nil
}
