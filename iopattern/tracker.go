package iopattern

import "github.com/pkg/errors"

// Tracker is the state machine of one session. It is not safe for
// concurrent use.
type Tracker struct {
	ops     Pattern
	pos     int // current op
	used    int // elements of ops[pos] already consumed
	aborted error
	done    bool
}

// NewTracker validates and normalizes the pattern.
func NewTracker(p Pattern) (*Tracker, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{ops: p.Normalize()}, nil
}

// Absorb records an absorb of n elements.
func (t *Tracker) Absorb(n int) error { return t.consume(OpAbsorb, n) }

// Squeeze records a squeeze of n elements.
func (t *Tracker) Squeeze(n int) error { return t.consume(OpSqueeze, n) }

func (t *Tracker) consume(kind Kind, n int) error {
	if t.aborted != nil {
		return errors.Wrap(ErrSessionAborted, t.aborted.Error())
	}
	if t.done {
		return t.abort(errors.Wrap(ErrSessionAborted, "session already finished"))
	}
	if n < 1 {
		return t.abort(errors.Wrapf(ErrPatternViolation, "%s of %d elements", kind, n))
	}
	if t.pos >= len(t.ops) {
		return t.abort(errors.Wrapf(ErrPatternViolation, "%s%d after the pattern %s ended", kind, n, t.ops))
	}
	op := t.ops[t.pos]
	if op.Kind != kind {
		return t.abort(errors.Wrapf(ErrPatternViolation, "%s%d while pattern expects %s%d (op %d of %s)",
			kind, n, op.Kind, op.N-t.used, t.pos, t.ops))
	}
	if t.used+n > op.N {
		return t.abort(errors.Wrapf(ErrPatternViolation, "%s%d exceeds the %d remaining in op %d of %s",
			kind, n, op.N-t.used, t.pos, t.ops))
	}
	t.used += n
	if t.used == op.N {
		t.pos++
		t.used = 0
	}
	return nil
}

// Finish closes the session. It fails if part of the pattern was not used.
func (t *Tracker) Finish() error {
	if t.aborted != nil {
		return errors.Wrap(ErrSessionAborted, t.aborted.Error())
	}
	if t.done {
		return t.abort(errors.Wrap(ErrSessionAborted, "session already finished"))
	}
	if rest := t.Remaining(); len(rest) > 0 {
		return t.abort(errors.Wrapf(ErrPatternIncomplete, "remaining %s", rest))
	}
	t.done = true
	return nil
}

// Remaining returns what is left of the pattern.
func (t *Tracker) Remaining() Pattern {
	if t.pos >= len(t.ops) {
		return nil
	}
	rest := make(Pattern, len(t.ops)-t.pos)
	copy(rest, t.ops[t.pos:])
	rest[0].N -= t.used
	return rest
}

// Next returns the kind expected by the next call.
func (t *Tracker) Next() (Kind, bool) {
	if t.aborted != nil || t.pos >= len(t.ops) {
		return 0, false
	}
	return t.ops[t.pos].Kind, true
}

// Err returns the error that aborted the session, if any.
func (t *Tracker) Err() error { return t.aborted }

func (t *Tracker) abort(err error) error {
	t.aborted = err
	return err
}
