package poseidonfold

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/vocdoni/poseidonfold/iopattern"
)

var ErrNoSession = errors.New("poseidonfold: no sponge session in progress")

// Mode selects how squeezed elements are read from a permuted state.
type Mode int

const (
	// Compressed answers a single-element squeeze opening an output window
	// with MixLast(state, M, 0), the circomlib digest. Every other element
	// is read from the rate like in Rate mode.
	Compressed Mode = iota
	// Rate reads the rate positions [1, width) of the mixed state.
	Rate
)

func (m Mode) String() string {
	switch m {
	case Compressed:
		return "compressed"
	case Rate:
		return "rate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compressed":
		return Compressed, nil
	case "rate":
		return Rate, nil
	default:
		return 0, errors.Errorf("poseidonfold: unknown sponge mode %q", s)
	}
}

// Sponge frames variable-length input over the permutation. Slot 0 is the
// capacity, slots [1, width) are the rate. A Sponge runs one session at a
// time and is not safe for concurrent use.
type Sponge struct {
	perm *Permutation
	mode Mode

	tracker *iopattern.Tracker
	err     error

	state []fr.Element
	// raw is set after a permutation until the final dense mix is applied.
	raw   bool
	dirty bool
	// fresh is set until the first element of an output window is read.
	fresh   bool
	absorb  int
	squeeze int
}

// NewSponge returns an idle sponge over perm.
func NewSponge(perm *Permutation, mode Mode) *Sponge {
	return &Sponge{perm: perm, mode: mode}
}

// Start opens a session following pattern, with a zero state.
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
	s.state = make([]fr.Element, w)
	s.raw = false
	s.dirty = false
	s.fresh = false
	s.absorb = 1
	s.squeeze = w
	return nil
}

// Absorb adds k elements into the rate. len(elems) must equal k.
func (s *Sponge) Absorb(k int, elems []fr.Element) error {
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
	for i := range elems {
		if s.absorb == w {
			if err := s.permute(); err != nil {
				return s.fail(err)
			}
		}
		if err := s.materialize(); err != nil {
			return s.fail(err)
		}
		s.state[s.absorb].Add(&s.state[s.absorb], &elems[i])
		s.absorb++
		s.dirty = true
	}
	return nil
}

// Squeeze reads m elements from the rate, permuting whenever input is pending
// or the rate of the last permutation is used up. The capacity slot is never
// read. In Compressed mode a squeeze of one element at the start of a window
// returns the digest instead, in place of the first rate element.
func (s *Sponge) Squeeze(m int) ([]fr.Element, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := s.tracker.Squeeze(m); err != nil {
		return nil, s.fail(err)
	}
	w := s.perm.Width()
	out := make([]fr.Element, m)
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

// Finish closes the session. It fails if the pattern was not fully used.
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

// materialize applies the pending dense mix of the last permutation.
func (s *Sponge) materialize() error {
	if !s.raw {
		return nil
	}
	mixed, err := Mix(s.state, s.perm.params.M)
	if err != nil {
		return err
	}
	s.state = mixed
	s.raw = false
	return nil
}

func (s *Sponge) read(single bool) (fr.Element, error) {
	if s.mode == Compressed && single && s.raw {
		return MixLast(s.state, s.perm.params.M, 0)
	}
	if err := s.materialize(); err != nil {
		return fr.Element{}, err
	}
	return s.state[s.squeeze], nil
}
